package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type exportDocument struct {
	Schedules []domain.Schedule `json:"schedules" yaml:"schedules"`
}

func newExportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all schedules to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.Schedules.List(cmd.Context())
			if err != nil {
				return err
			}
			return writeExport(cmd.OutOrStdout(), format, exportDocument{Schedules: schedules})
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json or yaml")

	return cmd
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q (want %s or %s)", format, formatJSON, formatYAML)
	}
}
