package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Index    IndexConfig    `mapstructure:"index"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	GRPCAddr        string        `mapstructure:"grpc_addr"`
	HealthAddr      string        `mapstructure:"health_addr"`
	StreamBuffer    int           `mapstructure:"stream_buffer"`
	MaxResults      uint32        `mapstructure:"max_results"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Reflection      bool          `mapstructure:"reflection"`
}

// DatabaseConfig locates the relational store the corpora are read from.
// DSN wins over the individual connection fields when set.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	DSN             string `mapstructure:"dsn"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLMode         string `mapstructure:"sslmode"`
	ConnectAttempts uint   `mapstructure:"connect_attempts"`
}

// ConnString returns the driver-specific data source name.
func (c DatabaseConfig) ConnString() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	switch c.Driver {
	case "sqlite":
		if c.Name == "" {
			return "", fmt.Errorf("sqlite requires database.dsn or database.name")
		}
		return c.Name, nil
	case "pgx", "postgres", "":
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:   "/" + c.Name,
		}
		if c.User != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		if c.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

type IndexConfig struct {
	Language         string        `mapstructure:"language"`
	Stem             bool          `mapstructure:"stem"`
	Stopwords        bool          `mapstructure:"stopwords"`
	K1               float64       `mapstructure:"k1"`
	B                float64       `mapstructure:"b"`
	PopulateOnStart  bool          `mapstructure:"populate_on_start"`
	PopulateInterval time.Duration `mapstructure:"populate_interval"`
}

type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Environment string  `mapstructure:"environment"`
}

type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Output  string `mapstructure:"output"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Server.StreamBuffer < 1 {
		warnings = append(warnings, fmt.Sprintf("server stream_buffer %d is below 1; streams will use a buffer of 1", c.Server.StreamBuffer))
	}

	if c.Server.MaxResults == 0 {
		warnings = append(warnings, "server max_results is 0; every score request will be rejected")
	}

	if c.Index.K1 < 0 {
		warnings = append(warnings, fmt.Sprintf("index k1 %.2f is negative and will be ignored", c.Index.K1))
	}

	if c.Index.B < 0 || c.Index.B > 1 {
		warnings = append(warnings, fmt.Sprintf("index b %.2f is outside [0.0, 1.0] and will be clamped", c.Index.B))
	}

	if c.Index.PopulateInterval < 0 {
		warnings = append(warnings, fmt.Sprintf("index populate_interval %s is negative", c.Index.PopulateInterval))
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		warnings = append(warnings, fmt.Sprintf("tracing sample_rate %.2f is outside [0.0, 1.0]", c.Tracing.SampleRate))
	}

	if c.Database.Driver != "" && c.Database.DSN == "" && c.Database.Driver != "sqlite" && c.Database.User == "" {
		warnings = append(warnings, "database user is empty; set database.dsn or POSTGRES_USER")
	}

	return warnings
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			GRPCAddr:        ":10000",
			HealthAddr:      ":8080",
			StreamBuffer:    4,
			MaxResults:      100000,
			ShutdownTimeout: 30 * time.Second,
			Reflection:      true,
		},
		Database: DatabaseConfig{
			Driver:          "pgx",
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			ConnectAttempts: 5,
		},
		Index: IndexConfig{
			Language:  "english",
			Stem:      true,
			Stopwords: true,
			K1:        1.2,
			B:         0.75,
		},
		Tracing: TracingConfig{
			ServiceName: "ranker",
			SampleRate:  1.0,
			Environment: "development",
		},
		Audit: AuditConfig{Output: "stdout"},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.grpc_addr", d.Server.GRPCAddr)
	v.SetDefault("server.health_addr", d.Server.HealthAddr)
	v.SetDefault("server.stream_buffer", d.Server.StreamBuffer)
	v.SetDefault("server.max_results", d.Server.MaxResults)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.reflection", d.Server.Reflection)

	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", d.Database.SSLMode)
	v.SetDefault("database.connect_attempts", d.Database.ConnectAttempts)

	v.SetDefault("index.language", d.Index.Language)
	v.SetDefault("index.stem", d.Index.Stem)
	v.SetDefault("index.stopwords", d.Index.Stopwords)
	v.SetDefault("index.k1", d.Index.K1)
	v.SetDefault("index.b", d.Index.B)
	v.SetDefault("index.populate_on_start", d.Index.PopulateOnStart)
	v.SetDefault("index.populate_interval", d.Index.PopulateInterval)

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.environment", d.Tracing.Environment)

	v.SetDefault("audit.enabled", d.Audit.Enabled)
	v.SetDefault("audit.output", d.Audit.Output)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads configuration from an optional file and the environment.
// Variables are prefixed RANKER_ (RANKER_SERVER_GRPC_ADDR); the POSTGRES_*
// variables of the original deployment are honored for the database.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetEnvPrefix("RANKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range map[string]string{
		"database.user":     "POSTGRES_USER",
		"database.password": "POSTGRES_PASSWORD",
		"database.name":     "POSTGRES_DB",
		"database.host":     "POSTGRES_HOST",
		"database.port":     "POSTGRES_PORT",
	} {
		if err := v.BindEnv(key, "RANKER_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Validate configuration and print warnings
	if warnings := cfg.Validate(); len(warnings) > 0 {
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}
	}

	return &cfg, nil
}
