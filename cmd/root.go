package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/streamworks/streamctl/config"
	"github.com/streamworks/streamctl/session"
	"github.com/streamworks/streamctl/streaming"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	sess    *session.Manager
	client  *streaming.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "streamctl",
	Short: "A command-line client for the streaming platform",
	Long: `streamctl is a CLI client for the streaming platform: log in, browse the
content catalog, and resolve stream URLs. Administrators can additionally
upload videos and create, edit, and delete content items.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records the build version shown by --version
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration, session, and API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Restore the persisted session
	sessionFile := cfg.Session.File
	if sessionFile == "" {
		sessionFile = session.DefaultPath()
	}
	sess, err = session.Load(sessionFile)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	// Create the API client
	client, err = streaming.NewClient(cfg.Server.URL, sess, logger,
		streaming.WithTimeout(time.Duration(cfg.Server.Timeout)*time.Second),
		streaming.WithUploadMimeType(cfg.Upload.MimeType),
		streaming.WithUserAgent("streamctl/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create streaming client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
