package cli

import (
	"github.com/spf13/cobra"

	icio "github.com/matzehuels/icview/pkg/io"
)

func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON snapshot of every classified layer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()

			w := cmd.OutOrStdout()
			if output == "" || output == "-" {
				return icio.WriteSnapshot(w, ws.data)
			}
			if err := icio.ExportSnapshot(output, ws.data); err != nil {
				return err
			}
			printSuccess(w, "Exported %d layers", len(ws.data.Layers()))
			printFile(w, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")

	return cmd
}
