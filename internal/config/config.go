// Package config loads the service configuration from command line flags,
// an optional .env file, and environment variables, in that order of
// increasing precedence. The resulting values are checked with the
// go-playground validator before use.
package config

import (
	"errors"
	"flag"
	"log"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the service.
type Config struct {
	// RunAddr is the address the HTTP server listens on.
	RunAddr string `env:"SERVER_ADDRESS" validate:"hostname_port"`

	// DatabaseDSN is the MongoDB connection URI. When empty the service
	// falls back to the in-memory store.
	DatabaseDSN string `env:"DATABASE_DSN"`

	// DatabaseName is the MongoDB database holding the users and gifts
	// collections.
	DatabaseName string `env:"DATABASE_NAME"`

	// JWTSecret signs issued auth tokens. Startup aborts when it is empty.
	JWTSecret string `env:"JWT_SECRET"`

	// LogLevel is the zap logging level.
	LogLevel string `env:"LOG_LEVEL" validate:"loglevel"`

	// StoreTimeout bounds every call to the document store.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT"`
}

var defaultConfig = Config{
	RunAddr:      ":3060",
	DatabaseDSN:  "",
	DatabaseName: "giftdb",
	JWTSecret:    "",
	LogLevel:     "info",
	StoreTimeout: 10 * time.Second,
}

// ErrEmptyJWTSecret is returned when no token signing secret is configured.
var ErrEmptyJWTSecret = errors.New("the JWT signing secret is empty")

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.JWTSecret == "" {
		return ErrEmptyJWTSecret
	}

	return nil
}

func applyDefaults(values *Config, defaults Config) {
	*values = defaults
}

// InitOption customizes config initialization.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing disables command line flag parsing. It is used
// by tests, which run under the testing package's own flag set.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

func (c *Config) overrideWith(other Config) {
	if other.RunAddr != "" {
		c.RunAddr = other.RunAddr
	}

	if other.DatabaseDSN != "" {
		c.DatabaseDSN = other.DatabaseDSN
	}

	if other.DatabaseName != "" {
		c.DatabaseName = other.DatabaseName
	}

	if other.JWTSecret != "" {
		c.JWTSecret = other.JWTSecret
	}

	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}

	if other.StoreTimeout != 0 {
		c.StoreTimeout = other.StoreTimeout
	}
}

// New builds the effective configuration and validates it.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		disableFlagsParsing: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := &Config{}
	applyDefaults(values, defaultConfig)

	if !options.disableFlagsParsing {
		flag.StringVar(&values.RunAddr, "a", values.RunAddr, "address and port to run server")
		flag.StringVar(&values.DatabaseDSN, "d", values.DatabaseDSN, "MongoDB connection URI")
		flag.StringVar(&values.DatabaseName, "n", values.DatabaseName, "MongoDB database name")
		flag.StringVar(&values.JWTSecret, "s", values.JWTSecret, "auth token signing secret")
		flag.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
		flag.DurationVar(&values.StoreTimeout, "t", values.StoreTimeout, "per-call document store timeout")
		flag.Parse()
	}

	var valuesFromEnv Config
	err = env.Parse(&valuesFromEnv)
	if err != nil {
		return nil, err
	}

	values.overrideWith(valuesFromEnv)

	if err := values.validate(); err != nil {
		return nil, err
	}

	return values, nil
}
