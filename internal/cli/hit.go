// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/radial/hit"
	"github.com/gogpu/radial/shape"
)

// hitCommand reports the data under a point of the static chart.
func (c *CLI) hitCommand() *cobra.Command {
	var (
		flags  inputFlags
		x, y   float64
		output string
	)
	cmd := &cobra.Command{
		Use:   "hit",
		Short: "Report the data under a canvas coordinate",
		Long: `Hit tests the static chart at (x, y) in canvas pixels and prints the
tooltip text. With --output the chart is rendered with the tooltip.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runHit(cmd.Context(), &flags, x, y, output)
		},
	}
	flags.bind(cmd)
	cmd.Flags().Float64VarP(&x, "x", "x", 0, "pointer x in canvas pixels")
	cmd.Flags().Float64VarP(&y, "y", "y", 0, "pointer y in canvas pixels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "also render the chart with the tooltip to this PNG")
	return cmd
}

func (c *CLI) runHit(ctx context.Context, flags *inputFlags, x, y float64, output string) error {
	logger := loggerFromContext(ctx)

	chart, err := c.newChart()
	if err != nil {
		return err
	}
	defer chart.Close()

	in := flags.input()
	cfg := flags.renderConfig(c.cfg.RenderConfig())
	if output != "" {
		img, m, ok, err := chart.RenderPointer(in, cfg, x, y)
		if err != nil {
			return err
		}
		if err := writePNG(output, img); err != nil {
			return err
		}
		logger.Debug("rendered pointer", "path", output, "hit", ok)
		return c.printHit(m, ok, cfg.Labels())
	}

	m, ok, err := chart.HitTest(in, cfg, x, y)
	if err != nil {
		return err
	}
	return c.printHit(m, ok, cfg.Labels())
}

func (c *CLI) printHit(m shape.Meta, ok bool, names []string) error {
	if !ok {
		_, err := fmt.Fprintln(c.out, "no data")
		return err
	}
	_, err := fmt.Fprintln(c.out, hit.Describe(m, names))
	return err
}
