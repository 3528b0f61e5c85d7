package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure. Values come
// from the YAML file and may be overridden by environment variables.
type Config struct {
	// Environment specifies the current running environment (development, production, test)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout bounds a single request; it must exceed scanner.delay
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists the browser origins allowed by CORS. "*" allows all.
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" env-separator:"," yaml:"allowedOrigins"`
		// RetryAfter is advertised to clients while an identity cannot be resolved
		RetryAfter time.Duration `env:"HTTP_RETRY_AFTER" env-default:"2s" yaml:"retryAfter"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		Username string `env:"DATABASE_USERNAME" env-default:"pen" yaml:"username"`
		Password string `env:"DATABASE_PASSWORD" env-default:"pen" yaml:"password"`
		Host     string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		Port     int    `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode      string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		DatabaseName string `env:"DATABASE_NAME" env-default:"pen" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Redis backs scan history and session revocation
	Redis struct {
		Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379" yaml:"addr"`
		Password string `env:"REDIS_PASSWORD" env-default:"" yaml:"password"`
		DB       int    `env:"REDIS_DB" env-default:"0" yaml:"db"`
		// KeyPrefix namespaces every key written by the service
		KeyPrefix    string        `env:"REDIS_KEY_PREFIX" env-default:"pen" yaml:"keyPrefix"`
		DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s" yaml:"dialTimeout"`
		ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" env-default:"3s" yaml:"readTimeout"`
		WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" env-default:"3s" yaml:"writeTimeout"`
	} `yaml:"redis"`

	// Auth configures sessions and the admin privilege
	Auth struct {
		// AdminEmail is compared byte for byte with the signed-in email
		AdminEmail string `env:"AUTH_ADMIN_EMAIL" env-default:"admin@pen.cm" yaml:"adminEmail"`
		// PrivateKey is the PEM encoded RSA key used to sign session tokens
		PrivateKey string `env:"AUTH_PRIVATE_KEY" yaml:"privateKey"`
		// PublicKey is the PEM encoded RSA key used to verify session tokens
		PublicKey string `env:"AUTH_PUBLIC_KEY" yaml:"publicKey"`
		// Issuer is written to and required in every token
		Issuer string `env:"AUTH_ISSUER" env-default:"pen" yaml:"issuer"`
		// SessionTTL is the lifetime of a session token
		SessionTTL time.Duration `env:"AUTH_SESSION_TTL" env-default:"24h" yaml:"sessionTTL"`
		// BcryptCost is the work factor used when hashing new passwords
		BcryptCost int `env:"AUTH_BCRYPT_COST" env-default:"10" yaml:"bcryptCost"`
	} `yaml:"auth"`

	// Scanner configures the URL risk evaluation
	Scanner struct {
		// Evaluator selects the verdict source: "heuristic" or "remote"
		Evaluator string `env:"SCANNER_EVALUATOR" env-default:"heuristic" yaml:"evaluator"`
		// Delay is the simulated analysis time before a verdict is returned
		Delay time.Duration `env:"SCANNER_DELAY" env-default:"3s" yaml:"delay"`
		// URLScanToken is the urlscan.io API key used by the remote evaluator
		URLScanToken string `env:"SCANNER_URLSCAN_TOKEN" yaml:"urlscanToken"`
		// URLScanBaseURL overrides the urlscan.io API root
		URLScanBaseURL string `env:"SCANNER_URLSCAN_BASE_URL" env-default:"https://urlscan.io" yaml:"urlscanBaseURL"`
		// PollInterval is the wait between two result polls of the remote evaluator
		PollInterval time.Duration `env:"SCANNER_POLL_INTERVAL" env-default:"2s" yaml:"pollInterval"`
		// RemoteTimeout bounds one remote evaluation, submission and polling included
		RemoteTimeout time.Duration `env:"SCANNER_REMOTE_TIMEOUT" env-default:"20s" yaml:"remoteTimeout"`
	} `yaml:"scanner"`

	// History configures the per-device scan history
	History struct {
		// TTL expires an idle device history; 0 keeps it forever
		TTL time.Duration `env:"HISTORY_TTL" env-default:"0s" yaml:"ttl"`
	} `yaml:"history"`

	// Subscription configures the simulated checkout
	Subscription struct {
		// PaymentDelay is the simulated payment processing time
		PaymentDelay time.Duration `env:"SUBSCRIPTION_PAYMENT_DELAY" env-default:"2s" yaml:"paymentDelay"`
		// MaxAttempts bounds the retries of an activation job
		MaxAttempts int `env:"SUBSCRIPTION_MAX_ATTEMPTS" env-default:"5" yaml:"maxAttempts"`
	} `yaml:"subscription"`

	Assistant struct {
		// ReplyDelay is the simulated thinking time before an answer
		ReplyDelay time.Duration `env:"ASSISTANT_REPLY_DELAY" env-default:"1500ms" yaml:"replyDelay"`
	} `yaml:"assistant"`

	// Worker configures the background job runner
	Worker struct {
		// MaxWorkers is the concurrency of the default queue
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"10" yaml:"maxWorkers"`
	} `yaml:"worker"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// LoadEnv fills a Config from defaults and environment variables only.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}

	return &cfg, nil
}
