package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/p-doom/crowd-cast/internal/api"
	"github.com/p-doom/crowd-cast/internal/catalog"
	"github.com/p-doom/crowd-cast/internal/config"
	"github.com/p-doom/crowd-cast/internal/frontmost"
	"github.com/p-doom/crowd-cast/internal/host"
	"github.com/p-doom/crowd-cast/internal/logger"
	"github.com/p-doom/crowd-cast/internal/tracking"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the crowdcast daemon",
	Long: `Start the crowdcast daemon: frontmost detection, hooked-state
polling, and the HTTP/websocket API for external controllers.`,
	Example: `  # Start with defaults (port 8799, 200ms poll interval)
  crowdcast serve

  # Start on a custom port with debug logging
  crowdcast serve --port 9090 --log-level debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}

	// Flag overrides
	if viper.IsSet("server_port") {
		if port := viper.GetInt("server_port"); port > 0 {
			configMgr.SetPort(port)
		}
	}
	if viper.IsSet("log_level") {
		if level := viper.GetString("log_level"); level != "" {
			configMgr.SetLogLevel(level)
		}
	}
	if viper.IsSet("poll_interval_ms") {
		if ms := viper.GetInt("poll_interval_ms"); ms > 0 {
			configMgr.SetPollInterval(ms)
		}
	}

	cfg := configMgr.Get()
	logger.Init(cfg.LogLevel, true)
	log := logger.WithComponent("serve")
	log.Info().Str("config", configMgr.GetConfigPath()).Msg("Configuration loaded")

	det, automatic := frontmost.Probe()
	defer det.Close()

	lister := catalog.NewLister()
	defer lister.Close()

	model := host.NewMemory()
	hub := api.NewHub()

	tracker := tracking.New(model, tracking.Config{
		Detector:  det,
		Automatic: automatic,
		Interval:  configMgr.PollInterval(),
		Capacity:  cfg.MaxTrackedSources,
		OnChange:  hub.BroadcastHooked,
	})
	tracker.Start()
	defer tracker.Stop()

	server := api.NewServer(tracker, model, lister, hub, cfg.ExtraSuggestedApps)
	go func() {
		if err := server.Start(cfg.ServerPort); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	log.Info().
		Int("port", cfg.ServerPort).
		Str("mode", string(tracker.Mode())).
		Msg("crowdcast is running, press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("Shutting down")
	return nil
}
