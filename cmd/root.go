// Package cmd is the portfolio command line: the web server and the contact
// form client.
//
// Configuration comes from, highest priority first: command-line flags,
// PORTFOLIO_* environment variables (a .env file in the working directory is
// loaded into the environment at start), the YAML file named by --config or
// PORTFOLIO_CONFIG_FILE or found as .portfolio.yml, and built-in defaults.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vallamsettyashok/portfolio/internal/config"
	"github.com/vallamsettyashok/portfolio/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site and contact form",
	Long: `portfolio serves a single-page profile with a contact form, and ships a
terminal client for the same form.

  portfolio serve      Start the web server (GET /, POST /api/contact)
  portfolio contact    Send a message to the site owner`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .portfolio.yml, or PORTFOLIO_CONFIG_FILE)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	bindFlags(rootCmd.PersistentFlags(), map[string]string{"log.level": "log-level"})

	config.SetDefaults(viper.GetViper())
}

// bindFlags binds config keys to the named flags in fs.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind %s to --%s: %v", key, name, err))
		}
	}
}

func initConfig() {
	switch {
	case cfgFile != "":
		viper.SetConfigFile(cfgFile)
	case os.Getenv("PORTFOLIO_CONFIG_FILE") != "":
		viper.SetConfigFile(os.Getenv("PORTFOLIO_CONFIG_FILE"))
	default:
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".portfolio")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadRuntime resolves the configuration and builds the logger for it.
func loadRuntime() (*config.Config, *logrus.Logger, io.Closer, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, nil, err
	}
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, closer, nil
}
