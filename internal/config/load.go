package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// RIDEHAIL_DATABASE_DRIVER=postgres.
const EnvPrefix = "RIDEHAIL"

// Load builds a Config from defaults, an optional config file and the
// environment, in increasing order of precedence. An empty path skips the
// file; a path that does not exist is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, NewDefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal; viper only consults the environment for keys it knows about.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.log_level", d.Server.LogLevel)
	v.SetDefault("server.log_format", d.Server.LogFormat)

	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.name", d.Database.Name)
	v.SetDefault("database.sslmode", d.Database.SSLMode)
	v.SetDefault("database.max_conns", d.Database.MaxConns)
	v.SetDefault("database.sqlite_path", d.Database.SQLitePath)
	v.SetDefault("database.migrate_on_run", d.Database.MigrateOnRun)

	v.SetDefault("notification.driver", d.Notification.Driver)
	v.SetDefault("notification.amqp_url", d.Notification.AMQPURL)
	v.SetDefault("notification.exchange", d.Notification.Exchange)
	v.SetDefault("notification.routing_key", d.Notification.RoutingKey)
	v.SetDefault("notification.send_timeout", d.Notification.SendTimeout)
	v.SetDefault("notification.welcome_subject", d.Notification.WelcomeSubject)

	v.SetDefault("ride.placeholder_fare", d.Ride.PlaceholderFare)
	v.SetDefault("ride.placeholder_distance", d.Ride.PlaceholderDistance)
}
