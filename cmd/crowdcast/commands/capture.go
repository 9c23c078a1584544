package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture on|off",
	Short: "Enable or disable capture in manual mode",
	Long: `Toggle the manual capture flag on the running daemon. On compositors
where the frontmost window cannot be detected, the daemon treats every
tracked source as hooked while capture is enabled. In automatic mode
the flag is stored but has no effect on hooked state.`,
	Example: `  crowdcast capture on
  crowdcast capture off`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	var enabled bool
	switch args[0] {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return fmt.Errorf("invalid argument %q: expected on or off", args[0])
	}

	var resp struct {
		Enabled bool   `json:"enabled"`
		Mode    string `json:"mode"`
	}
	if err := apiPost("/api/capture/enabled", map[string]bool{"enabled": enabled}, &resp); err != nil {
		return err
	}

	fmt.Printf("capture enabled: %v (mode: %s)\n", resp.Enabled, resp.Mode)
	return nil
}
