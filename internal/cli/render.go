// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/radial"
)

// renderCommand draws the static chart.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  inputFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the static chart to a PNG",
		Example: `  radial render -s 2.3,0,4,1,1,1 -b 3,3,3,3,3,3 -a 2.5,0,4,1,1,1 -o chart.png`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRender(cmd.Context(), &flags, output)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "chart.png", "output PNG file")
	return cmd
}

func (c *CLI) runRender(ctx context.Context, flags *inputFlags, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	chart, err := c.newChart()
	if err != nil {
		return err
	}
	defer chart.Close()

	img, err := chart.Render(flags.input(), flags.renderConfig(c.cfg.RenderConfig()))
	if err != nil {
		return err
	}
	if err := writePNG(output, img); err != nil {
		return err
	}
	prog.done("Rendered " + output)
	return nil
}

// writePNG encodes img to path.
func writePNG(path string, img image.Image) (err error) {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := radial.EncodePNG(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}
