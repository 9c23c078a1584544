package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/p-doom/crowd-cast/internal/tracking"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tracked capture sources and their hooked state",
	Long: `Query the running daemon for every tracked capture source, its
configured target application, and whether that target is currently
frontmost.`,
	Example: `  # Show tracked sources in table format (default)
  crowdcast status

  # Show tracked sources as JSON
  crowdcast status --format json`,
	RunE: runStatus,
}

var statusFormat string

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", "table", "output format (table or json)")
}

type hookedResponse struct {
	Sources   []tracking.SourceState `json:"sources"`
	AnyHooked bool                   `json:"any_hooked"`
	Mode      string                 `json:"mode"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	var resp hookedResponse
	if err := apiGet("/api/sources/hooked", &resp); err != nil {
		return err
	}

	if statusFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTARGET APP\tHOOKED\tACTIVE")
	for _, s := range resp.Sources {
		fmt.Fprintf(w, "%s\t%s\t%v\t%v\n", s.Name, s.TargetApp, s.Hooked, s.Active)
	}
	w.Flush()

	fmt.Printf("\nany_hooked: %v  mode: %s\n", resp.AnyHooked, resp.Mode)
	return nil
}
