package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/p-doom/crowd-cast/internal/catalog"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List capturable windows known to the daemon",
	Long: `Query the running daemon for the windows currently available for
capture, annotated with their extracted application name and whether
the application is on the suggested list.`,
	Example: `  # List all capturable windows
  crowdcast windows

  # Only show windows from suggested applications
  crowdcast windows --suggested

  # JSON output
  crowdcast windows --format json`,
	RunE: runWindows,
}

var (
	windowsFormat        string
	windowsSuggestedOnly bool
)

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().StringVarP(&windowsFormat, "format", "f", "table", "output format (table or json)")
	windowsCmd.Flags().BoolVar(&windowsSuggestedOnly, "suggested", false, "only show windows from suggested applications")
}

type windowsResponse struct {
	Windows        []catalog.Window `json:"windows"`
	Suggested      []catalog.Window `json:"suggested"`
	SourceType     string           `json:"source_type"`
	WindowProperty string           `json:"window_property"`
}

func runWindows(cmd *cobra.Command, args []string) error {
	var resp windowsResponse
	if err := apiGet("/api/windows", &resp); err != nil {
		return err
	}

	list := resp.Windows
	if windowsSuggestedOnly {
		list = resp.Suggested
	}

	if windowsFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAPP\tSUGGESTED")
	for _, win := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", win.ID, win.Title, win.AppName, win.Suggested)
	}
	w.Flush()

	fmt.Printf("\nsource_type: %s\n", resp.SourceType)
	return nil
}
