package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/foreman/internal/cli/formatter"
	"github.com/alexanderramin/foreman/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create schedules from a JSON or YAML file",
		Long: `Create schedules from a JSON or YAML file.

Entries are created in file order. An entry's "after" field names the ref of
an earlier entry, which becomes its predecessor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
				out := cmd.ErrOrStderr()
				fmt.Fprintln(out, formatter.StyleRed.Render(fmt.Sprintf("%d problem(s) in %s:", len(errs), args[0])))
				for _, e := range errs {
					fmt.Fprintf(out, "  - %v\n", e)
				}
				return errors.New("import file is invalid")
			}

			plan, err := importer.Convert(schema)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d schedule(s)\n", args[0], len(plan))
				return nil
			}

			created, err := importer.Apply(cmd.Context(), app.Schedules, plan)
			if err != nil {
				if len(created) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d of %d schedule(s) before failing\n", len(created), len(plan))
				}
				return describeError(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d schedule(s)\n", len(created))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScheduleList(created))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without creating anything")

	return cmd
}
