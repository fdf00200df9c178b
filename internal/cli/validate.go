package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/astroname/internal/definition"
	clierrors "github.com/ariel-frischer/astroname/internal/errors"
	"github.com/ariel-frischer/astroname/internal/output"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the definition file",
	Long: `Load and check the definition file without asking any question.

Errors (exit 1): unreadable or unparsable file, missing ids, invalid formats,
and constraints that refer to the item itself or to a later item.
Warnings: duplicate ids and constraints that refer to unknown ids.

With --format the normalized definition (every format made explicit) is
written to stdout in the chosen encoding, which also converts between
JSON, YAML and TOML definitions.`,
	Example: `  # Check ./definition.json
  astroname validate

  # Convert the definition to YAML
  astroname validate --format yaml > definition.yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		caps := output.DetectTerminalCapabilities()
		useColor := caps.SupportsColor && !appConfig.NoColor

		// Keep stdout clean for the encoded definition.
		report := cmd.OutOrStdout()
		if format != "" {
			report = cmd.ErrOrStderr()
		}
		return runValidate(cmd.OutOrStdout(), output.NewPrinter(report, caps, useColor), appConfig.DefinitionFile, format)
	},
}

func init() {
	validateCmd.GroupID = GroupInspect
	validateCmd.Flags().StringP("format", "f", "", "print the normalized definition as json, yaml or toml")
	rootCmd.AddCommand(validateCmd)
}

// runValidate checks the definition at path, reporting through printer.
// A non-empty formatName writes the normalized definition to out.
func runValidate(out io.Writer, printer *output.Printer, path, formatName string) error {
	var format definition.Format
	if formatName != "" {
		var ok bool
		if format, ok = definition.ParseFormat(formatName); !ok {
			valid := make([]string, 0, len(definition.Formats()))
			for _, f := range definition.Formats() {
				valid = append(valid, string(f))
			}
			return withExitCode(ExitFailure, clierrors.InvalidFormat(formatName, valid))
		}
	}

	def, warnings, err := definition.ReadFile(path)
	for _, w := range warnings {
		printer.Warning(w.String())
	}
	if err != nil {
		printer.Failure(err.Error())
		return silentExit(ExitFailure, err)
	}

	if format != "" {
		data, err := definition.Encode(format, def.Normalized())
		if err != nil {
			return withExitCode(ExitFailure, clierrors.WrapWithMessage(err, clierrors.Runtime, "encoding definition"))
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
		if !strings.HasSuffix(string(data), "\n") {
			fmt.Fprintln(out)
		}
		return nil
	}

	printer.Success(fmt.Sprintf("%s: %d items, %d constraints, %d warnings",
		path, len(def), def.ConstraintCount(), len(warnings)))
	return nil
}
