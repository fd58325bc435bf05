package cmd

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/video-presenter/presenter/cue"
)

func init() {
	rootCmd.AddCommand(cuesCmd)
	cuesCmd.Flags().BoolP("json", "j", false, "Print the cues as JSON")
	cuesCmd.Flags().Float64P("fps", "r", 0, "Frame rate used to show each cue in seconds")
	cuesCmd.SetOut(os.Stdout)

	cuesCmd.AddCommand(cuesSchemaCmd)
	cuesSchemaCmd.SetOut(os.Stdout)
}

// cuesCmd prints the cue table of a marker file without playing anything.
var cuesCmd = &cobra.Command{
	Use:     "cues <markers>",
	Short:   "List the cue points of a marker file",
	Args:    cobra.ExactArgs(1),
	Example: "  presenter cues talk.csv --fps 25",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fps    = lo.Must(cmd.Flags().GetFloat64("fps"))
		)

		table, err := cue.Load(args[0])
		handleErr(err)

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(table.Listing(args[0], fps)))
			return
		}

		printCueTree(cmd.OutOrStdout(), table, fps)
		warnSkipped(cmd.ErrOrStderr(), table)
	},
}

// cuesSchemaCmd prints the JSON schema of "cues --json".
var cuesSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the cue listing",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		schema, err := cueListingSchema()
		handleErr(err)
		cmd.Println(string(schema))
	},
}

func cueListingSchema() ([]byte, error) {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	schema := reflector.Reflect(&cue.Listing{})
	schema.Title = "presenter cue listing"
	return json.MarshalIndent(schema, "", "  ")
}
