package config

const EnvPrefix = "WMS"

const (
	AppEnvDev        = "dev"
	AppEnvProd       = "prod"
	AppEnvProduction = "production"
)

const (
	EnvAppEnv       = "WMS_APP_ENV"
	EnvPort         = "WMS_APP_PORT"
	EnvLogLevel     = "WMS_LOG_LEVEL"
	EnvDBDSN        = "WMS_DB_DSN"
	EnvDBHost       = "WMS_DB_HOST"
	EnvDBUser       = "WMS_DB_USER"
	EnvDBName       = "WMS_DB_NAME"
	EnvDBPassword   = "WMS_DB_PASSWORD"
	EnvUseSQLite    = "WMS_USE_SQLITE"
	EnvRedisURL     = "WMS_REDIS_URL"
	EnvJWTSecret    = "WMS_JWT_SECRET"
	EnvJWTIssuer    = "WMS_JWT_ISSUER"
	EnvJWTExpiresIn = "WMS_JWT_EXPIRES_IN"
	EnvCORSOrigins  = "WMS_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
