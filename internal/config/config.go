package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Circulation CirculationConfig `yaml:"circulation"`
	Stats       StatsConfig       `yaml:"stats"`
	Retry       RetryConfig       `yaml:"retry"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"SERVER_REQUEST_TIMEOUT"  env-default:"5s"`
	// WriteRateLimit caps lend/return requests per operator per minute. Zero disables it.
	WriteRateLimit int `yaml:"write_rate_limit" env:"SERVER_WRITE_RATE_LIMIT" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	LockTimeout      time.Duration `yaml:"lock_timeout"       env:"DATABASE_LOCK_TIMEOUT"       env-default:"2s"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"10s"`
	MigrateOnStart   bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"false"`
}

// AuthConfig holds operator token verification settings. Tokens are issued
// by the external auth service; this service only verifies them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"library-auth"`
}

// CirculationConfig holds borrowing rules.
type CirculationConfig struct {
	LoanPeriod            time.Duration `yaml:"loan_period"              env:"CIRCULATION_LOAN_PERIOD"              env-default:"720h"`
	MaxLoanDays           int           `yaml:"max_loan_days"            env:"CIRCULATION_MAX_LOAN_DAYS"            env-default:"365"`
	MaxQuantityPerRequest int           `yaml:"max_quantity_per_request" env:"CIRCULATION_MAX_QUANTITY_PER_REQUEST" env-default:"20"`
}

// StatsConfig holds reporting limits.
type StatsConfig struct {
	MaxTrendDays           int           `yaml:"max_trend_days"           env:"STATS_MAX_TREND_DAYS"           env-default:"366"`
	PopularLimit           int           `yaml:"popular_limit"            env:"STATS_POPULAR_LIMIT"            env-default:"50"`
	RecentUnreturnedWindow time.Duration `yaml:"recent_unreturned_window" env:"STATS_RECENT_UNRETURNED_WINDOW" env-default:"720h"`
	LoaderWait             time.Duration `yaml:"loader_wait"              env:"STATS_LOADER_WAIT"              env-default:"2ms"`
	LoaderBatchCapacity    int           `yaml:"loader_batch_capacity"    env:"STATS_LOADER_BATCH_CAPACITY"    env-default:"100"`
}

// RetryConfig bounds caller-side retries of transient failures.
type RetryConfig struct {
	MaxAttempts     int           `yaml:"max_attempts"     env:"RETRY_MAX_ATTEMPTS"     env-default:"3"`
	InitialInterval time.Duration `yaml:"initial_interval" env:"RETRY_INITIAL_INTERVAL" env-default:"50ms"`
	MaxInterval     time.Duration `yaml:"max_interval"     env:"RETRY_MAX_INTERVAL"     env-default:"1s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
