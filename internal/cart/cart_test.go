package cart

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	saved   []Line
	loadErr error
	saves   int
}

func (m *memoryStore) Load() ([]Line, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.saved, nil
}

func (m *memoryStore) Save(lines []Line) error {
	m.saved = append([]Line{}, lines...)
	m.saves++
	return nil
}

func snapshot(name string, price string) ProductSnapshot {
	return ProductSnapshot{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func TestAdd_MergesSameVariant(t *testing.T) {
	store := &memoryStore{}
	engine, err := NewEngine(store)
	require.NoError(t, err)

	tee := snapshot("Classic Tee", "25.00")
	require.NoError(t, engine.Add(tee, 1, "M", "black"))
	require.NoError(t, engine.Add(tee, 2, "M", "black"))

	lines := engine.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, engine.TotalItems())
}

func TestAdd_DistinctVariantsStaySeparate(t *testing.T) {
	store := &memoryStore{}
	engine, err := NewEngine(store)
	require.NoError(t, err)

	tee := snapshot("Classic Tee", "25.00")
	require.NoError(t, engine.Add(tee, 1, "M", "black"))
	require.NoError(t, engine.Add(tee, 1, "L", "black"))
	require.NoError(t, engine.Add(tee, 1, "M", "white"))

	require.Len(t, engine.Lines(), 3)
	assert.Equal(t, 3, engine.TotalItems())
}

func TestAdd_IgnoresNonPositiveQuantity(t *testing.T) {
	store := &memoryStore{}
	engine, err := NewEngine(store)
	require.NoError(t, err)

	require.NoError(t, engine.Add(snapshot("Cap", "10.00"), 0, "", ""))
	require.NoError(t, engine.Add(snapshot("Cap", "10.00"), -2, "", ""))

	assert.Empty(t, engine.Lines())
	assert.Zero(t, store.saves)
}

func TestSetQuantity_FirstMatchWins(t *testing.T) {
	store := &memoryStore{}
	engine, err := NewEngine(store)
	require.NoError(t, err)

	tee := snapshot("Classic Tee", "25.00")
	require.NoError(t, engine.Add(tee, 1, "M", "black"))
	require.NoError(t, engine.Add(tee, 1, "L", "black"))

	require.NoError(t, engine.SetQuantity(tee.ID, 5))

	lines := engine.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "M", lines[0].Size)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestSetQuantity_ZeroRemovesAllVariants(t *testing.T) {
	store := &memoryStore{}
	engine, err := NewEngine(store)
	require.NoError(t, err)

	tee := snapshot("Classic Tee", "25.00")
	other := snapshot("Hoodie", "60.00")
	require.NoError(t, engine.Add(tee, 1, "M", "black"))
	require.NoError(t, engine.Add(tee, 1, "L", "black"))
	require.NoError(t, engine.Add(other, 1, "", ""))

	require.NoError(t, engine.SetQuantity(tee.ID, 0))

	lines := engine.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, other.ID, lines[0].Product.ID)
}

func TestSetQuantity_UnknownProductIsNoop(t *testing.T) {
	store := &memoryStore{}
	engine, err := NewEngine(store)
	require.NoError(t, err)

	require.NoError(t, engine.Add(snapshot("Cap", "10.00"), 1, "", ""))
	saves := store.saves

	require.NoError(t, engine.SetQuantity(uuid.New(), 4))
	assert.Equal(t, saves, store.saves)
}

func TestRemove_DropsEveryVariant(t *testing.T) {
	store := &memoryStore{}
	engine, err := NewEngine(store)
	require.NoError(t, err)

	tee := snapshot("Classic Tee", "25.00")
	require.NoError(t, engine.Add(tee, 2, "M", "black"))
	require.NoError(t, engine.Add(tee, 1, "L", "white"))

	require.NoError(t, engine.Remove(tee.ID))
	assert.Empty(t, engine.Lines())
	assert.Empty(t, store.saved)
}

func TestTotals(t *testing.T) {
	store := &memoryStore{}
	engine, err := NewEngine(store)
	require.NoError(t, err)

	require.NoError(t, engine.Add(snapshot("Classic Tee", "25.00"), 2, "M", ""))
	require.NoError(t, engine.Add(snapshot("Hoodie", "59.99"), 1, "", ""))

	assert.Equal(t, 3, engine.TotalItems())
	assert.True(t, engine.TotalPrice().Equal(decimal.RequireFromString("109.99")))
}

func TestMutationsWriteThrough(t *testing.T) {
	store := &memoryStore{}
	engine, err := NewEngine(store)
	require.NoError(t, err)

	tee := snapshot("Classic Tee", "25.00")
	require.NoError(t, engine.Add(tee, 1, "M", "black"))
	assert.Equal(t, 1, store.saves)

	require.NoError(t, engine.SetQuantity(tee.ID, 3))
	assert.Equal(t, 2, store.saves)

	require.NoError(t, engine.Clear())
	assert.Equal(t, 3, store.saves)
	assert.NotNil(t, store.saved)
	assert.Empty(t, store.saved)
}

func TestNewEngine_ReloadsPersistedLines(t *testing.T) {
	store := &memoryStore{}
	first, err := NewEngine(store)
	require.NoError(t, err)
	tee := snapshot("Classic Tee", "25.00")
	require.NoError(t, first.Add(tee, 2, "M", "black"))

	second, err := NewEngine(store)
	require.NoError(t, err)
	lines := second.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, tee.ID, lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestNewEngine_DropsNonPositiveLoadedLines(t *testing.T) {
	store := &memoryStore{saved: []Line{
		{Product: snapshot("Cap", "10.00"), Quantity: 0},
		{Product: snapshot("Hoodie", "60.00"), Quantity: -1},
		{Product: snapshot("Classic Tee", "25.00"), Quantity: 2},
	}}

	engine, err := NewEngine(store)
	require.NoError(t, err)
	lines := engine.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Classic Tee", lines[0].Product.Name)
}

func TestNewEngine_SurfacesStoreFailure(t *testing.T) {
	store := &memoryStore{loadErr: errors.New("disk on fire")}
	_, err := NewEngine(store)
	require.Error(t, err)

	_, err = NewEngine(nil)
	require.Error(t, err)
}
