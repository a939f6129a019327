package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"geobox/internal/geom"
)

func newBoundsCmd(o *options) *cobra.Command {
	var prec int
	cmd := &cobra.Command{
		Use:   "bounds <path>...",
		Short: "Print the bounding box of each file",
		Long: "Print minX, minY, maxX, maxY, width and height for each file. " +
			"With several files a total line covers every vertex of every file.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.setup(true); err != nil {
				return err
			}
			if !cmd.Flags().Changed("precision") {
				prec = o.cfg.View.Precision
			}
			return writeBounds(cmd.OutOrStdout(), args, prec)
		},
	}
	cmd.Flags().IntVar(&prec, "precision", 5, "digits after the decimal point")
	return cmd
}

// writeBounds loads every path and prints one row per file. Loading stops
// at the first error.
func writeBounds(w io.Writer, paths []string, prec int) error {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', prec, 64) }
	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		}).
		Headers("file", "minX", "minY", "maxX", "maxY", "width", "height", "vertices")
	row := func(name string, b geom.BBox, n int) {
		width, height := b.WidthHeight()
		tbl.Row(name, num(b.MinX), num(b.MinY), num(b.MaxX), num(b.MaxY), num(width), num(height), strconv.Itoa(n))
	}
	total := geom.NewBBox()
	vertices := 0
	for _, p := range paths {
		d, err := geom.Load(p)
		if err != nil {
			return err
		}
		log.Debug().Str("path", p).Int("vertices", d.Vertices()).Msg("bounds")
		row(filepath.Base(p), d.BBox, d.Vertices())
		foldData(&total, d)
		vertices += d.Vertices()
	}
	if len(paths) > 1 {
		row("total", total, vertices)
	}
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// foldData adds every vertex of d to b.
func foldData(b *geom.BBox, d geom.Data) {
	for _, p := range d.Points {
		b.AddPoint(p)
	}
	for _, ls := range d.Lines {
		for _, p := range ls {
			b.AddPoint(p)
		}
	}
	for _, poly := range d.Polygons {
		for _, ring := range poly {
			for _, p := range ring {
				b.AddPoint(p)
			}
		}
	}
}
