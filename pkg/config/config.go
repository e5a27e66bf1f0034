package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is empty because every envconfig tag carries the full
	// CHRONOVA_ prefix already.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "CHRONOVA_DB_DSN"
	EnvDBHost = "CHRONOVA_DB_HOST"
	EnvDBUser = "CHRONOVA_DB_USER"
	EnvDBName = "CHRONOVA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Shipping      ShippingConfig
	Cart          CartConfig
	WhatsApp      WhatsAppConfig
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
	Env          string `envconfig:"CHRONOVA_APP_ENV" required:"true"`
	Port         string `envconfig:"CHRONOVA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CHRONOVA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHRONOVA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CHRONOVA_DB_DSN"`
	Driver string `envconfig:"CHRONOVA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CHRONOVA_DB_HOST"`
	LegacyPort     int    `envconfig:"CHRONOVA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CHRONOVA_DB_USER"`
	LegacyPassword string `envconfig:"CHRONOVA_DB_PASSWORD"`
	LegacyName     string `envconfig:"CHRONOVA_DB_NAME"`
	LegacySSLMode  string `envconfig:"CHRONOVA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CHRONOVA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CHRONOVA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CHRONOVA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CHRONOVA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CHRONOVA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CHRONOVA_REDIS_ADDR"`
	Password     string        `envconfig:"CHRONOVA_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHRONOVA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHRONOVA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHRONOVA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHRONOVA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHRONOVA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHRONOVA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"CHRONOVA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"CHRONOVA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"CHRONOVA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"CHRONOVA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CHRONOVA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CHRONOVA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CHRONOVA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CHRONOVA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CHRONOVA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"CHRONOVA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"CHRONOVA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"CHRONOVA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CHRONOVA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CHRONOVA_AUTO_MIGRATE" default:"false"`
}

// ShippingConfig carries the free-shipping threshold and the flat fees.
// The WhatsApp surface historically charged a different flat fee, so it gets
// its own knob; both surfaces read from here, nothing is inlined per call site.
type ShippingConfig struct {
	FreeThresholdCents   int64 `envconfig:"CHRONOVA_SHIPPING_FREE_THRESHOLD_CENTS" default:"5000"`
	FlatFeeCents         int64 `envconfig:"CHRONOVA_SHIPPING_FLAT_FEE_CENTS" default:"500"`
	WhatsAppFlatFeeCents int64 `envconfig:"CHRONOVA_SHIPPING_WHATSAPP_FLAT_FEE_CENTS" default:"400"`
}

type CartConfig struct {
	TTL            time.Duration `envconfig:"CHRONOVA_CART_TTL" default:"720h"`
	MaxQtyPerLine  int           `envconfig:"CHRONOVA_CART_MAX_QTY_PER_LINE" default:"99"`
	TokenCookie    string        `envconfig:"CHRONOVA_CART_TOKEN_COOKIE" default:"chronova_cart"`
	CookieSecure   bool          `envconfig:"CHRONOVA_CART_COOKIE_SECURE" default:"true"`
	CookieMaxAgeSec int          `envconfig:"CHRONOVA_CART_COOKIE_MAX_AGE_SEC" default:"2592000"`
}

type WhatsAppConfig struct {
	BusinessNumber string `envconfig:"CHRONOVA_WHATSAPP_BUSINESS_NUMBER" default:""`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
