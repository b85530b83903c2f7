package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Wikibase  WikibaseConfig  `yaml:"wikibase"`
	Commons   CommonsConfig   `yaml:"commons"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,x-access-tokens"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	APIPrefix       string        `yaml:"api_prefix"       env:"SERVER_API_PREFIX"       env-default:"/api/v1"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"52428800"`
	// BatchTimeout replaces ReadTimeout and WriteTimeout for audio batches.
	BatchTimeout time.Duration `yaml:"batch_timeout" env:"SERVER_BATCH_TIMEOUT" env-default:"15m"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds session and OAuth 1.0a consumer settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"agpb"`
	SessionTTL     time.Duration `yaml:"session_ttl"      env:"AUTH_SESSION_TTL"      env-default:"45m"`
	ConsumerKey    string        `yaml:"consumer_key"     env:"AUTH_CONSUMER_KEY"     env-required:"true"`
	ConsumerSecret string        `yaml:"consumer_secret"  env:"AUTH_CONSUMER_SECRET"  env-required:"true"`
	OAuthURL       string        `yaml:"oauth_url"        env:"AUTH_OAUTH_URL"        env-default:"https://meta.wikimedia.org/w/index.php"`
	CallbackURL    string        `yaml:"callback_url"     env:"AUTH_CALLBACK_URL"     env-default:"oob"`
	FrontendURL    string        `yaml:"frontend_url"     env:"AUTH_FRONTEND_URL"     env-default:"http://localhost:3000"`
	// SessionIdle is how long an untouched session survives cleanup-sessions.
	SessionIdle time.Duration `yaml:"session_idle" env:"AUTH_SESSION_IDLE" env-default:"720h"`
}

// WikibaseConfig holds knowledge store endpoint settings and the property
// ids this service writes. Property ids are external contract values.
type WikibaseConfig struct {
	APIURL         string        `yaml:"api_url"          env:"WIKIBASE_API_URL"          env-default:"https://www.wikidata.org/w/api.php"`
	UserAgent      string        `yaml:"user_agent"       env:"WIKIBASE_USER_AGENT"       env-default:"agpb-backend/1.0"`
	RequestTimeout time.Duration `yaml:"request_timeout"  env:"WIKIBASE_REQUEST_TIMEOUT"  env-default:"30s"`
	SummaryTag     string        `yaml:"summary_tag"      env:"WIKIBASE_SUMMARY_TAG"      env-default:"AGPB"`
	AppVersion     string        `yaml:"app_version"      env:"WIKIBASE_APP_VERSION"      env-default:"v2.0"`
	SearchLimit    int           `yaml:"search_limit"     env:"WIKIBASE_SEARCH_LIMIT"     env-default:"15"`
	AudioProperty  string        `yaml:"audio_property"   env:"WIKIBASE_AUDIO_PROPERTY"   env-default:"P443"`
	LangProperty   string        `yaml:"lang_property"    env:"WIKIBASE_LANG_PROPERTY"    env-default:"P407"`
	TransProperty  string        `yaml:"trans_property"   env:"WIKIBASE_TRANS_PROPERTY"   env-default:"P5972"`
	ImageProperty  string        `yaml:"image_property"   env:"WIKIBASE_IMAGE_PROPERTY"   env-default:"P18"`
}

// CommonsConfig holds media repository settings.
type CommonsConfig struct {
	APIURL         string        `yaml:"api_url"         env:"COMMONS_API_URL"         env-default:"https://commons.wikimedia.org/w/api.php"`
	FileBaseURL    string        `yaml:"file_base_url"   env:"COMMONS_FILE_BASE_URL"   env-default:"https://commons.wikimedia.org/wiki/Special:FilePath/"`
	License        string        `yaml:"license"         env:"COMMONS_LICENSE"         env-default:"{{cc-by-sa-4.0}}"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"COMMONS_REQUEST_TIMEOUT" env-default:"60s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig bounds request rates. Write routes are limited per user,
// everything else per client IP.
type RateLimitConfig struct {
	ReadPerMinute   int           `yaml:"read_per_minute"  env:"RATELIMIT_READ_PER_MINUTE"  env-default:"120"`
	WritePerMinute  int           `yaml:"write_per_minute" env:"RATELIMIT_WRITE_PER_MINUTE" env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATELIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// TelemetryConfig holds metrics settings.
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name"    env:"TELEMETRY_SERVICE_NAME"    env-default:"agpb-backend"`
	MetricsEnabled bool   `yaml:"metrics_enabled" env:"TELEMETRY_METRICS_ENABLED" env-default:"true"`
}
