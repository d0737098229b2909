package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bitlatte/areyou/internal/config"
)

var cfgFile string
var envFile string
var appConfig config.Config
var siteParams map[string]interface{}
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "areyou",
	Short: "Builds the \"Are You a DiLoreto?\" family history page",
	Long: `areyou reads the family history timeline and the family contacts,
and writes a static page with a photo gallery and a contact dialog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

func initializeConfig(cmd *cobra.Command) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	v := viper.New()
	for key, value := range config.Defaults() {
		v.SetDefault(key, value)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("AREYOU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlag("logLevel", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("bind log-level flag: %w", err)
	}

	configErr := v.ReadInConfig()
	if configErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(configErr, &notFound) {
			return fmt.Errorf("failed to read config file: %w", configErr)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, configErr)
		}
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}
	siteParams = v.GetStringMap("params")

	level, _ := config.ParseLevel(appConfig.LogLevel)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if configErr != nil {
		logger.Info("no config file found, using defaults and environment")
	} else {
		logger.Info("using config file", "path", v.ConfigFileUsed())
	}
	return nil
}
