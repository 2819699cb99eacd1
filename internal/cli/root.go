package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pratik-mahalle/userdata/internal/config"
	"github.com/pratik-mahalle/userdata/internal/pkg/logger"
	"github.com/pratik-mahalle/userdata/internal/pkg/metrics"
	"github.com/pratik-mahalle/userdata/internal/services"
	"github.com/pratik-mahalle/userdata/pkg/client"
)

const (
	configDirName = ".userdata"
	envPrefix     = "USERDATA"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	logLevel     string
	metricsFile  string

	v          = viper.New()
	appConfig  *config.Config
	appLogger  = logger.Nop()
	appMetrics *metrics.Metrics
	apiClient  *client.Client
	accessor   *services.UserDataAccessor
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	v = viper.New()
	appConfig = nil
	appMetrics = nil
	apiClient = nil
	accessor = nil

	cmd := &cobra.Command{
		Use:   "userdata",
		Short: "Query a remote users endpoint",
		Long: `userdata loads the user records published by a users endpoint
(JSONPlaceholder style) and answers questions about them: how many users
there are, their e-mail addresses, and which users match a set of fields.

It can also serve a local mock of such an endpoint.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			// config subcommands only touch the config file
			if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			return initApp()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.userdata/config.yaml)")
	flags.StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml")
	flags.StringVar(&serverURL, "server", "", "users endpoint base URL (overrides config)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the command")

	_ = v.BindPFlag("output", flags.Lookup("output"))
	_ = v.BindPFlag("base_url", flags.Lookup("server"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("metrics_file", flags.Lookup("metrics-file"))

	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newUsersCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute runs the root command. Metrics are exported even when the command
// fails so that failed loads are visible to the collector.
func Execute() error {
	err := rootCmd.Execute()
	if werr := writeMetrics(); werr != nil && err == nil {
		err = werr
	}
	return err
}

func initConfig() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("output", FormatTable)

	_ = v.ReadInConfig()
}

// initApp builds the configuration, logger, metrics, client and accessor.
// Precedence is flag, then config file or USERDATA_* env, then config.Load.
func initApp() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if url := v.GetString("base_url"); url != "" {
		cfg.Source.BaseURL = url
	}
	if path := v.GetString("users_path"); path != "" {
		cfg.Source.UsersPath = path
	}
	if v.IsSet("timeout") {
		cfg.Source.Timeout = v.GetDuration("timeout")
	}
	if key := v.GetString("api_key"); key != "" {
		cfg.Source.APIKey = key
	}
	if level := v.GetString("log_level"); level != "" {
		cfg.Logging.Level = level
	}
	if file := v.GetString("metrics_file"); file != "" {
		cfg.Metrics.File = file
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appConfig = cfg
	appLogger = logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	appMetrics = metrics.New()

	apiClient = client.NewClient(client.Config{
		BaseURL:   cfg.Source.BaseURL,
		UsersPath: cfg.Source.UsersPath,
		APIKey:    cfg.Source.APIKey,
		Timeout:   cfg.Source.Timeout,
	})
	accessor = services.NewUserDataAccessor(apiClient.Users(), services.WithMetrics(appMetrics))

	appLogger.WithFields(map[string]interface{}{
		"url":     cfg.Source.UsersURL(),
		"timeout": cfg.Source.Timeout.String(),
	}).Debug("Client configured")
	return nil
}

func writeMetrics() error {
	if appMetrics == nil || appConfig == nil || appConfig.Metrics.File == "" {
		return nil
	}
	if err := appMetrics.WriteToTextfile(appConfig.Metrics.File); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	appLogger.With("file", appConfig.Metrics.File).Debug("Metrics written")
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	return v.GetString("output")
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}
