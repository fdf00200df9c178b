package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/astroname/internal/definition"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the definition format",
	Long: `Print the JSON Schema (draft 2020-12) describing a definition file.
Editors can use it to validate and complete definition.json.`,
	Example: `  astroname schema > definition.schema.json`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSchema(cmd.OutOrStdout())
	},
}

func init() {
	schemaCmd.GroupID = GroupInspect
	rootCmd.AddCommand(schemaCmd)
}

func writeSchema(out io.Writer) error {
	data, err := json.MarshalIndent(definition.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
