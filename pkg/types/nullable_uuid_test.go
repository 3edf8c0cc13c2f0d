package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableUUID_AbsentNullAndValue(t *testing.T) {
	type patch struct {
		CategoryID NullableUUID `json:"category_id"`
	}

	var absent patch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.CategoryID.Valid)

	var null patch
	require.NoError(t, json.Unmarshal([]byte(`{"category_id":null}`), &null))
	assert.True(t, null.CategoryID.Valid)
	assert.Nil(t, null.CategoryID.Value)

	id := uuid.New()
	var set patch
	require.NoError(t, json.Unmarshal([]byte(`{"category_id":"`+id.String()+`"}`), &set))
	assert.True(t, set.CategoryID.Valid)
	require.NotNil(t, set.CategoryID.Value)
	assert.Equal(t, id, *set.CategoryID.Value)
}

func TestNullableUUID_RejectsBadValue(t *testing.T) {
	type patch struct {
		CategoryID NullableUUID `json:"category_id"`
	}
	var p patch
	assert.Error(t, json.Unmarshal([]byte(`{"category_id":"nope"}`), &p))
}
