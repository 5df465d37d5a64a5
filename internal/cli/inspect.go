package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/icdata"
	"github.com/matzehuels/icview/pkg/layout"
)

// =============================================================================
// cells
// =============================================================================

func (c *CLI) cellsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cells",
		Short: "List top-level cells with bounding boxes and shape counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()
			return printCells(cmd.OutOrStdout(), ws.data)
		},
	}
}

func printCells(w io.Writer, d *icdata.LayoutData) error {
	t := newTable("Cell", "BBox", "Polygons", "Boxes", "Paths", "Labels", "Pins", "Nets")
	for _, cell := range d.Cells() {
		bbox, err := cell.BBox()
		if err != nil {
			return err
		}
		t.Row(
			cell.Name(),
			formatBox(bbox),
			strconv.Itoa(total(cell.Polygons())),
			strconv.Itoa(total(cell.Boxes())),
			strconv.Itoa(total(cell.Paths())),
			strconv.Itoa(total(cell.Labels())),
			strconv.Itoa(total(cell.Pins())),
			strconv.Itoa(len(cell.Nets())),
		)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

// =============================================================================
// layers
// =============================================================================

func (c *CLI) layersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "List loaded layers with their purposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()
			return printLayers(cmd.OutOrStdout(), ws.data)
		},
	}
}

func printLayers(w io.Writer, d *icdata.LayoutData) error {
	if len(d.Layers()) == 0 {
		printWarning(w, "No layers matched the layer map")
		return nil
	}
	t := newTable("Layer", "Number", "Purpose", "Labels", "Cells", "Shapes")
	for _, l := range d.Layers() {
		shapes, err := l.Shapes()
		if err != nil {
			return err
		}
		used, count := 0, 0
		for _, cs := range shapes {
			if !cs.IsEmpty() {
				used++
			}
			count += cs.Count()
		}
		labels := "kept"
		if l.SkipLabels() {
			labels = "skipped"
		}
		t.Row(
			l.Name(),
			fmt.Sprintf("%d/%d", l.Index(), l.DataType()),
			l.Purpose().String(),
			labels,
			strconv.Itoa(used),
			strconv.Itoa(count),
		)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

// =============================================================================
// shapes
// =============================================================================

type shapesOpts struct {
	layer      int
	datatype   int
	purpose    string
	skipLabels bool
}

func (c *CLI) shapesCommand() *cobra.Command {
	opts := shapesOpts{purpose: icdata.DefaultPurpose, skipLabels: true}

	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "Classify one layer and print the buckets of every cell",
		Example: `  icview shapes -l top.toml --layer 5 --datatype 0 --purpose pin-drawing
  icview shapes -l top.toml --layer 63 --purpose label --skip-labels=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateLayerNumber(opts.layer, opts.datatype); err != nil {
				return err
			}
			return c.runShapes(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.layer, "layer", 0, "layer number")
	cmd.Flags().IntVar(&opts.datatype, "datatype", 0, "datatype number")
	cmd.Flags().StringVar(&opts.purpose, "purpose", opts.purpose, "purpose tags, e.g. drawing, pin, net or pin-drawing")
	cmd.Flags().BoolVar(&opts.skipLabels, "skip-labels", opts.skipLabels, "drop text shapes")
	_ = cmd.MarkFlagRequired("layer")

	return cmd
}

func (c *CLI) runShapes(cmd *cobra.Command, opts shapesOpts) error {
	ctx := cmd.Context()
	db, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	idx, err := db.FindLayer(opts.layer, opts.datatype)
	if err != nil {
		return errors.Wrap(errors.ErrCodeLayerNotFound, err, "layer %d/%d", opts.layer, opts.datatype)
	}
	info, err := db.LayerInfo(idx)
	if err != nil {
		return err
	}

	l := icdata.NewLayerData(db, info.Name, info.Layer, info.Datatype, opts.purpose,
		icdata.WithSkipLabels(opts.skipLabels),
		icdata.WithLogger(loggerFromContext(ctx)),
	)
	cached := l.Cached()
	shapes, err := l.Shapes()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, StyleTitle.Render(l.String()))
	printKeyValue(w, "purpose", l.Purpose().String())
	printBuckets(w, shapes)

	count := 0
	for _, cs := range shapes {
		count += cs.Count()
	}
	printStats(w, len(shapes), count, cached)
	return nil
}

// printBuckets prints one table row per cell, sorted by cell name, followed
// by the pin coordinates of each cell that has any.
func printBuckets(w io.Writer, shapes map[string]*icdata.CellShapes) {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)

	t := newTable("Cell", "Polygons", "Boxes", "Paths", "Labels", "Pins", "Nets")
	for _, name := range names {
		cs := shapes[name]
		t.Row(
			name,
			strconv.Itoa(len(cs.Polygons)),
			strconv.Itoa(len(cs.Boxes)),
			strconv.Itoa(len(cs.Paths)),
			strconv.Itoa(len(cs.Labels)),
			strconv.Itoa(len(cs.Pins)),
			strconv.Itoa(len(cs.Nets)),
		)
	}
	fmt.Fprintln(w, t.Render())

	for _, name := range names {
		for _, p := range shapes[name].Pins {
			printDetail(w, "%s pin %s", name, formatPoint(p))
		}
		for _, s := range shapes[name].Labels {
			printDetail(w, "%s label %q at %s", name, s.Text(), formatPoint(s.TextPos().Pair()))
		}
	}
}

// =============================================================================
// Helpers
// =============================================================================

func total[V any](m map[string][]V) int {
	n := 0
	for _, v := range m {
		n += len(v)
	}
	return n
}

func formatBox(b layout.Box) string {
	if b.Empty {
		return "empty"
	}
	return formatPoint(b.Min.Pair()) + " " + formatPoint(b.Max.Pair())
}
