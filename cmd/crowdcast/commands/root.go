package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "crowdcast",
		Short: "crowdcast - window capture hooked-state tracking",
		Long: `crowdcast tracks whether each window capture source's target
application is currently frontmost ("hooked") and exposes that live state,
a window catalogue, and source creation to external controllers.

Features:
  • Frontmost application detection (X11, Windows; manual mode on Wayland)
  • Per-source hooked/active state with an any_hooked aggregate
  • Change notifications pushed over websocket on every aggregate edge
  • Window enumeration with suggested capture targets
  • Capture source creation for selected windows`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/crowdcast/config.yaml)")
	rootCmd.PersistentFlags().Int("port", 0, "server port (default is 8799)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int("poll-interval", 0, "poll interval in milliseconds (default is 200)")

	// Bind flags to viper
	viper.BindPFlag("server_port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("poll_interval_ms", rootCmd.PersistentFlags().Lookup("poll-interval"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}
