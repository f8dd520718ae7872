package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/osa911/folio/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect folio configuration",
	Long:  `View the configuration folio resolves from the environment and .env files.`,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the EmailJS credentials are set",
	Run: func(cmd *cobra.Command, args []string) {
		if missing := cfg.MissingCredentials(); len(missing) > 0 {
			fmt.Printf("❌ Missing: %s\n", strings.Join(missing, ", "))
			os.Exit(1)
		}
		fmt.Println("✅ EmailJS credentials are configured")
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the resolved configuration in JSON format. Secrets are masked.`,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := json.MarshalIndent(redact(cfg), "", "  ")
		if err != nil {
			logger.Error("Failed to marshal config: %v", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

// redact returns a copy of c with the private key masked
func redact(c *config.Config) config.Config {
	out := *c
	if out.EmailJSPrivateKey != "" {
		out.EmailJSPrivateKey = "********"
	}
	return out
}

// initConfigCommands sets up all config-related commands
func initConfigCommands() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configShowCmd)
}
