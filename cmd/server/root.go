package main

import (
	"github.com/spf13/cobra"

	"ridehail/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Ride-hailing account and ride API",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (yaml, toml or env); RIDEHAIL_* environment variables override it")
}

// loadConfig reads the --config file, if any, and the environment.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
