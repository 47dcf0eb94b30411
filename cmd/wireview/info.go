package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/wireview/model"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.obj>",
		Short: "Display model information",
		Long:  "Display vertex count, edge count and bounding box of an OBJ model without opening the viewer.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, runInfo(cmd.OutOrStdout(), args[0]))
		},
	}
}

// runInfo reports on path; unlike the viewer, an unreadable file is an error
func runInfo(w io.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "cannot access file")
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory", path)
	}

	m, err := model.Open(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "File:       %s\n", filepath.Base(path))
	fmt.Fprintf(w, "Size:       %.2f KB\n", float64(info.Size())/1024)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Vertices:   %d\n", len(m.Vertices))
	fmt.Fprintf(w, "Edges:      %d\n", len(m.Edges))

	lo, hi, ok := m.Bounds()
	if !ok {
		return nil
	}
	size := hi.Sub(lo)
	center := lo.Add(hi).Scale(0.5)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Bounds Min: (%.3f, %.3f, %.3f)\n", lo.X, lo.Y, lo.Z)
	fmt.Fprintf(w, "Bounds Max: (%.3f, %.3f, %.3f)\n", hi.X, hi.Y, hi.Z)
	fmt.Fprintf(w, "Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Fprintf(w, "Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)
	return nil
}
