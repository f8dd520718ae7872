package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/osa911/folio/internal/config"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/server"
	"github.com/osa911/folio/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *logging.Logger
)

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize the global logger
	if err := logging.InitLogger(cfg.Logging()); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger = logging.GetGlobalLogger()
}

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - portfolio contact service",
	Long: `folio serves the portfolio contact form and relays submitted messages
through EmailJS. Credentials are read from EMAILJS_* environment variables
or a .env file in the working directory.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the contact form HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("Starting folio %s in %s mode", version.Info(), cfg.Environment)
		if err := server.Start(ctx, cfg); err != nil {
			logger.Error("Server stopped: %v", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("folio version: %s\n", version.Info())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(versionCmd)
	initConfigCommands()

	serveCmd.Flags().String("port", "", "Port to listen on (default: API_PORT or 8080)")

	sendCmd.Flags().String("name", "", "Your name")
	sendCmd.Flags().String("email", "", "Your email address")
	sendCmd.Flags().String("message", "", "Message to send")
}

func main() {
	err := rootCmd.Execute()
	if logger != nil {
		logger.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
