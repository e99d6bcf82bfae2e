// Command server runs the ride-hailing HTTP API and its schema migrations.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
