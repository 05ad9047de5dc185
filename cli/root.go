package cli

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gmseer/config"
)

var logLevel = new(slog.LevelVar)

var rootCmd = &cobra.Command{
	Use:   "gmseer",
	Short: "gmseer indexes FREN, GM and GN activity into a relational store",
	Long: "gmseer reads decoded event batches, aggregates transfers and burns per account, " +
		"enriches every touched account with balances and identity at the batch's last block " +
		"and stores the result in sqlite or postgres",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		return errors.New("unable to run root command")
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("config", "", "path to the configuration file")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	rootCmd.PersistentFlags().StringSlice("node.rpc.urls", nil, "state gateway rpc urls")
	_ = viper.BindPFlag("node.rpc.urls", rootCmd.PersistentFlags().Lookup("node.rpc.urls"))
	rootCmd.PersistentFlags().String("database.engine", "sqlite", "database engine (sqlite or pgsql)")
	_ = viper.BindPFlag("database.engine", rootCmd.PersistentFlags().Lookup("database.engine"))
	rootCmd.PersistentFlags().String("database.sqlite.file", "gmseer.db", "sqlite database file")
	_ = viper.BindPFlag("database.sqlite.file", rootCmd.PersistentFlags().Lookup("database.sqlite.file"))
	rootCmd.PersistentFlags().String("spool.dir", "", "directory holding batch files")
	_ = viper.BindPFlag("spool.dir", rootCmd.PersistentFlags().Lookup("spool.dir"))
	rootCmd.PersistentFlags().String("metrics.addr", "", "listen address for metrics and pprof, empty to disable")
	_ = viper.BindPFlag("metrics.addr", rootCmd.PersistentFlags().Lookup("metrics.addr"))
}

func initConfig() {
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SEER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("seer.logLevel", "info")
	viper.SetDefault("node.rpc.maxConnections", 4)
	viper.SetDefault("node.rpc.chunkSize", 500)
	viper.SetDefault("node.rpc.timeout", "30s")
	viper.SetDefault("spool.pattern", "*.json")
	viper.SetDefault("spool.poll", "30s")
	viper.SetDefault("cache.retain", 10000)

	initLogging()
	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Failed to read config file: %v", err)
	} else {
		viper.OnConfigChange(func(e fsnotify.Event) {
			slog.Info("config file changed", "name", e.Name, "op", e.Op.String())
			setLogLevel()
		})
		viper.WatchConfig()
	}
	setLogLevel()
}

func initLogging() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	})
	slog.SetDefault(slog.New(handler))
}

// setLogLevel applies seer.logLevel; it runs again whenever the config file changes.
func setLogLevel() {
	level := viper.GetString("seer.logLevel")
	switch level {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "error":
		logLevel.Set(slog.LevelError)
	case "warn":
		logLevel.Set(slog.LevelWarn)
	default:
		logLevel.Set(slog.LevelInfo)
	}
	slog.Info("setting log level", "level", level)
}

func loadConfig() (config.Config, error) {
	var cfg config.Config
	err := viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
