package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Checkout      CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ARBRANDS_APP_ENV" required:"true"`
	Port         string `envconfig:"ARBRANDS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ARBRANDS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ARBRANDS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ARBRANDS_DB_DSN"`
	Driver string `envconfig:"ARBRANDS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"ARBRANDS_DB_HOST"`
	Port     int    `envconfig:"ARBRANDS_DB_PORT" default:"5432"`
	User     string `envconfig:"ARBRANDS_DB_USER"`
	Password string `envconfig:"ARBRANDS_DB_PASSWORD"`
	Name     string `envconfig:"ARBRANDS_DB_NAME"`
	SSLMode  string `envconfig:"ARBRANDS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ARBRANDS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ARBRANDS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ARBRANDS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ARBRANDS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: when URL and Address are both empty the API runs
// without auth rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"ARBRANDS_REDIS_URL"`
	Address      string        `envconfig:"ARBRANDS_REDIS_ADDR"`
	Password     string        `envconfig:"ARBRANDS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ARBRANDS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ARBRANDS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ARBRANDS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ARBRANDS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ARBRANDS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ARBRANDS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret string        `envconfig:"ARBRANDS_JWT_SECRET" required:"true"`
	Issuer string        `envconfig:"ARBRANDS_JWT_ISSUER" default:"arbrands"`
	TTL    time.Duration `envconfig:"ARBRANDS_JWT_TTL" default:"168h"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ARBRANDS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ARBRANDS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ARBRANDS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ARBRANDS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ARBRANDS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ARBRANDS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"ARBRANDS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ARBRANDS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"ARBRANDS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"ARBRANDS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"ARBRANDS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ARBRANDS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ARBRANDS_AUTO_MIGRATE" default:"false"`
}

// CheckoutConfig holds the WhatsApp number the order hand-off links to.
type CheckoutConfig struct {
	WhatsAppNumber string `envconfig:"ARBRANDS_CHECKOUT_WHATSAPP_NUMBER" default:"1234567890"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, "sqlite") {
		db.DSN = "file::memory:?cache=shared"
		return nil
	}

	missing := []string{}
	required := []struct {
		env   string
		value string
	}{
		{"ARBRANDS_DB_HOST", db.Host},
		{"ARBRANDS_DB_USER", db.User},
		{"ARBRANDS_DB_NAME", db.Name},
	}
	for _, item := range required {
		if item.value == "" {
			missing = append(missing, item.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either ARBRANDS_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
