package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/astroname/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/astroname"

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for astroname",
	Example: `  # Show version info
  astroname version

  # Plain output (for scripts)
  astroname version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout())
		} else {
			printPrettyVersion(cmd.OutOrStdout())
		}
	},
}

func init() {
	versionCmd.GroupID = GroupInspect
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "astroname %s\n", version.Version)
	for _, info := range version.Details()[1:] {
		fmt.Fprintf(out, "%s: %s\n", strings.ToLower(info.Label), info.Value)
	}
}

// printPrettyVersion prints a styled version output inside a box
func printPrettyVersion(out io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	const boxWidth = 44
	border := strings.Repeat("─", boxWidth-2)

	fmt.Fprintln(out)
	fmt.Fprintln(out, cyan("  astroname"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "╭"+border+"╮")
	for _, info := range version.Details() {
		line := fmt.Sprintf("  %s    %s", yellow(fmt.Sprintf("%10s", info.Label)), white(info.Value))
		// Pad to fill the box; escape codes do not count towards the width.
		visible := 2 + 10 + 4 + len(info.Value)
		if visible < boxWidth-2 {
			line += strings.Repeat(" ", boxWidth-2-visible)
		}
		fmt.Fprintln(out, "│"+line+"│")
	}
	fmt.Fprintln(out, "╰"+border+"╯")
	fmt.Fprintln(out, dim("  "+SourceURL))
	fmt.Fprintln(out)
}
