// Package config centralizes all application configuration into typed structs.
//
// Go Learning Note (Configuration Management):
// Defaults live in NewDefaultConfig as plain struct literals. Load layers a
// config file and RIDEHAIL_* environment variables on top of them with
// "github.com/spf13/viper", then checks the result with validator struct tags.
//
// Using typed structs (not raw strings/maps) gives you compile-time safety
// and IDE autocompletion. This is strongly preferred in Go over untyped config.
package config

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// Storage backends.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Notification backends.
const (
	NotifierLog  = "log"
	NotifierAMQP = "amqp"
)

// Config is the top-level configuration container. Grouping related settings
// into sub-structs keeps the config organized as the application grows.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database" validate:"required"`
	Notification NotificationConfig `mapstructure:"notification" validate:"required"`
	Ride         RideConfig         `mapstructure:"ride"`
}

// ServerConfig holds HTTP server and logging settings.
//
// Go Learning Note (time.Duration):
// Go uses time.Duration (an int64 of nanoseconds) instead of raw integers for
// timeouts and intervals. Viper decodes strings such as "10s" into it.
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// DatabaseConfig selects the storage backend and carries its connection
// settings. Host/User/Password/Name only matter for postgres, SQLitePath only
// for sqlite. MigrateOnRun applies pending migrations when the server starts.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" validate:"required,oneof=memory postgres sqlite"`
	Host         string `mapstructure:"host" validate:"required_if=Driver postgres"`
	Port         int    `mapstructure:"port" validate:"omitempty,gt=0,lt=65536"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name" validate:"required_if=Driver postgres"`
	SSLMode      string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns     int32  `mapstructure:"max_conns" validate:"gte=0"`
	SQLitePath   string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	MigrateOnRun bool   `mapstructure:"migrate_on_run"`
}

// URL builds the postgres connection string
// postgres://<user>:<password>@<host>:<port>/<name>. User defaults to
// "postgres" and Port to 5432.
func (c DatabaseConfig) URL() string {
	user := c.User
	if user == "" {
		user = "postgres"
	}
	port := c.Port
	if port == 0 {
		port = 5432
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(port)),
		Path:   "/" + c.Name,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// NotificationConfig controls how the welcome message leaves the process.
type NotificationConfig struct {
	Driver         string        `mapstructure:"driver" validate:"required,oneof=log amqp"`
	AMQPURL        string        `mapstructure:"amqp_url" validate:"required_if=Driver amqp"`
	Exchange       string        `mapstructure:"exchange" validate:"required_if=Driver amqp"`
	RoutingKey     string        `mapstructure:"routing_key" validate:"required_if=Driver amqp"`
	SendTimeout    time.Duration `mapstructure:"send_timeout" validate:"gt=0"`
	WelcomeSubject string        `mapstructure:"welcome_subject" validate:"required"`
}

// RideConfig holds the fixed values stamped on every new ride. Fare and
// distance are not computed from the coordinates.
type RideConfig struct {
	PlaceholderFare     float64 `mapstructure:"placeholder_fare" validate:"gte=0"`
	PlaceholderDistance float64 `mapstructure:"placeholder_distance" validate:"gte=0"`
}

// NewDefaultConfig returns a Config populated with sensible defaults: an
// in-memory store and a logging notifier, so the server runs with no
// external services.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			LogLevel:        "info",
			LogFormat:       "json",
		},
		Database: DatabaseConfig{
			Driver:       DriverMemory,
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			Name:         "ridehail",
			SSLMode:      "disable",
			MaxConns:     10,
			SQLitePath:   "ridehail.db",
			MigrateOnRun: true,
		},
		Notification: NotificationConfig{
			Driver:         NotifierLog,
			Exchange:       "ridehail.notifications",
			RoutingKey:     "notification.email.welcome",
			SendTimeout:    5 * time.Second,
			WelcomeSubject: "Welcome!",
		},
		Ride: RideConfig{
			PlaceholderFare:     0,
			PlaceholderDistance: 0,
		},
	}
}
