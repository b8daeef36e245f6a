package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	CORS          CORSConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"WMS_APP_ENV" required:"true"`
	Port            string        `envconfig:"WMS_APP_PORT" default:"5000"`
	Version         string        `envconfig:"WMS_APP_VERSION" default:"1.0.0"`
	LogLevel        string        `envconfig:"WMS_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"WMS_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"WMS_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, AppEnvProduction)
}

type DBConfig struct {
	DSN        string `envconfig:"WMS_DB_DSN"`
	SQLitePath string `envconfig:"WMS_SQLITE_PATH" default:"wms.db"`

	LegacyHost     string `envconfig:"WMS_DB_HOST"`
	LegacyPort     int    `envconfig:"WMS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WMS_DB_USER"`
	LegacyPassword string `envconfig:"WMS_DB_PASSWORD"`
	LegacyName     string `envconfig:"WMS_DB_NAME"`
	LegacySSLMode  string `envconfig:"WMS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WMS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WMS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WMS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WMS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional. With neither URL nor Address set the API runs
// without rate limiting and token revocation.
type RedisConfig struct {
	URL          string        `envconfig:"WMS_REDIS_URL"`
	Address      string        `envconfig:"WMS_REDIS_ADDR"`
	Password     string        `envconfig:"WMS_REDIS_PASSWORD"`
	DB           int           `envconfig:"WMS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WMS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WMS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WMS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WMS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WMS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret    string        `envconfig:"WMS_JWT_SECRET" required:"true"`
	Issuer    string        `envconfig:"WMS_JWT_ISSUER" default:"wms-api"`
	ExpiresIn time.Duration `envconfig:"WMS_JWT_EXPIRES_IN" default:"168h"`
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"WMS_BCRYPT_COST" default:"12"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"WMS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"WMS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"WMS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"WMS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"WMS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"WMS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"WMS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WMS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WMS_AUTO_MIGRATE" default:"false"`
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
