// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/radial/anim"
)

type animateOpts struct {
	output   string
	frames   string
	mode     string
	duration time.Duration
	fps      int
}

// animateCommand records the build-up animation.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		flags inputFlags
		opts  animateOpts
	)
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Record the build-up animation as a GIF or numbered PNG frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.mode != "" {
				if _, err := anim.ParseMode(opts.mode); err != nil {
					return err
				}
				c.cfg.Mode = opts.mode
			}
			if opts.duration > 0 {
				c.cfg.Duration = opts.duration
			}
			if opts.fps > 0 {
				c.cfg.FPS = opts.fps
			}
			return c.runAnimate(cmd.Context(), &flags, opts)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "chart.gif", "output GIF file")
	cmd.Flags().StringVar(&opts.frames, "frames", "", "write numbered PNG frames into this directory instead of a GIF")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "animation mode: global, staggered or tiered")
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "per-slice animation duration")
	cmd.Flags().IntVar(&opts.fps, "fps", 0, "frame rate")
	return cmd
}

func (c *CLI) runAnimate(ctx context.Context, flags *inputFlags, opts animateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	chart, err := c.newChart()
	if err != nil {
		return err
	}
	defer chart.Close()

	var frames []*image.RGBA
	collect := func(img *image.RGBA, _ anim.Vector) error {
		frames = append(frames, img)
		return nil
	}
	if _, err := chart.Animate(ctx, flags.input(), flags.renderConfig(c.cfg.RenderConfig()), collect); err != nil {
		return err
	}
	if err := chart.Wait(); err != nil {
		return err
	}
	if len(frames) == 0 {
		return errors.New("animation produced no frames")
	}

	if opts.frames != "" {
		for i, img := range frames {
			if err := writePNG(filepath.Join(opts.frames, fmt.Sprintf("frame-%04d.png", i)), img); err != nil {
				return err
			}
		}
		prog.done(fmt.Sprintf("Wrote %d frames to %s", len(frames), opts.frames))
		return nil
	}

	f, err := createFile(opts.output)
	if err != nil {
		return err
	}
	if err := encodeGIF(f, frames, c.cfg.Interval()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Recorded %d frames to %s", len(frames), opts.output))
	return nil
}

// encodeGIF writes frames as an animated GIF that plays once and holds
// the final frame.
func encodeGIF(w io.Writer, frames []*image.RGBA, interval time.Duration) error {
	delay := int(interval / (10 * time.Millisecond))
	if delay < 2 {
		delay = 2
	}
	out := &gif.GIF{LoopCount: -1}
	for _, img := range frames {
		b := img.Bounds()
		p := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(p, b, img, b.Min)
		out.Image = append(out.Image, p)
		out.Delay = append(out.Delay, delay)
	}
	return gif.EncodeAll(w, out)
}
