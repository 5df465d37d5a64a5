package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/icview/pkg/errors"
	icio "github.com/matzehuels/icview/pkg/io"
)

type editOpts struct {
	edits  string
	output string
	format string
}

func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply an edit file to layer names and numbers",
		Long: `Apply an edit file to the loaded layers. Each edit names a layer by number
and sets one attribute (name, index, data_type, purpose or skip_labels).
Edits with a value of the wrong type are rejected and leave the layer unchanged.

With --output the edited layout is written back as a layout description.`,
		Example: `  icview edit -l top.toml --edits rename.toml -o top-renamed.toml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePath(opts.edits); err != nil {
				return err
			}
			return c.runEdit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.edits, "edits", "e", "", "edit file (.toml, .yaml, .json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the edited layout to this file, - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format for --output: toml, yaml or json (default from extension)")
	_ = cmd.MarkFlagRequired("edits")

	return cmd
}

func (c *CLI) runEdit(cmd *cobra.Command, opts editOpts) error {
	edits, err := icio.ImportEdits(opts.edits)
	if err != nil {
		return err
	}

	if len(edits) == 0 {
		printInfo(cmd.OutOrStdout(), "No edits in %s", opts.edits)
		return nil
	}

	ws, err := c.openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer ws.Close()

	// Keep stdout clean when the layout itself goes there.
	w := cmd.OutOrStdout()
	if opts.output == "-" {
		w = cmd.ErrOrStderr()
	}
	rejected := 0
	for _, r := range icio.ApplyEdits(ws.data, edits) {
		if r.Err != nil {
			rejected++
			printError(w, "%s: %s", r.Edit, errors.UserMessage(r.Err))
			continue
		}
		printSuccess(w, "%s", r.Edit)
	}

	if opts.output != "" {
		if err := writeLayout(cmd, ws, opts); err != nil {
			return err
		}
	}

	if rejected > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%d of %d edits rejected", rejected, len(edits))
	}
	return nil
}

func writeLayout(cmd *cobra.Command, ws *workspace, opts editOpts) error {
	var format icio.Format
	if opts.format != "" {
		f, err := icio.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		format = f
	}

	w := cmd.OutOrStdout()
	if opts.output == "-" {
		if format == "" {
			format = icio.FormatTOML
		}
		return icio.WriteLayout(w, format, ws.db)
	}

	if format != "" {
		if got, _ := icio.FormatFromPath(opts.output); got != format {
			return errors.New(errors.ErrCodeInvalidInput, "--format %s does not match %s", opts.format, opts.output)
		}
	}
	if err := icio.ExportLayout(opts.output, ws.db); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	printFile(w, opts.output)
	printNextStep(w, "Inspect the result", "icview layers -l "+opts.output)
	return nil
}
