// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/radial"
)

type exportOpts struct {
	dir     string
	prefix  string
	scale   float64
	variant string
}

// exportCommand writes the export variants.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags inputFlags
		opts  exportOpts
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the scores, scores+benchmark and scores+average variants",
		Long: `Export renders each variant at a multiple of the display size. Each
file is named <prefix>-<variant>.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runExport(cmd.Context(), &flags, opts)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "output directory")
	cmd.Flags().StringVarP(&opts.prefix, "prefix", "p", appName, "file name prefix")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "resolution multiplier (default from config)")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "export only this variant")
	return cmd
}

func (c *CLI) runExport(ctx context.Context, flags *inputFlags, opts exportOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	scale := opts.scale
	if scale <= 0 {
		scale = c.cfg.ExportScale
	}
	variants := radial.Variants()
	if opts.variant != "" {
		v, err := radial.ParseVariant(opts.variant)
		if err != nil {
			return err
		}
		variants = []radial.Variant{v}
	}

	chart, err := c.newChart()
	if err != nil {
		return err
	}
	defer chart.Close()

	in := flags.input()
	cfg := flags.renderConfig(c.cfg.RenderConfig())
	for _, v := range variants {
		img, err := chart.Export(in, cfg, v, scale)
		if err != nil {
			return fmt.Errorf("export %s: %w", v, err)
		}
		path := filepath.Join(opts.dir, v.Filename(opts.prefix))
		if err := writePNG(path, img); err != nil {
			return err
		}
		logger.Debug("exported", "variant", v, "path", path, "width", img.Bounds().Dx())
	}
	prog.done(fmt.Sprintf("Exported %d variants at %gx", len(variants), scale))
	return nil
}
