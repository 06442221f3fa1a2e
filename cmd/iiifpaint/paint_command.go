package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/filegrind/iiifpres-go/cbor"
	"github.com/filegrind/iiifpres-go/internal/plan"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatCBOR = "cbor"
)

func newPaintCommand(ctx *commandContext) *cobra.Command {
	var format string
	var out string
	var validate bool
	var minterName string

	cmd := &cobra.Command{
		Use:   "paint PLAN",
		Short: "Build a canvas from a paint plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != formatJSON && format != formatCBOR {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatCBOR)
			}

			p, err := plan.Load(args[0])
			if err != nil {
				return err
			}
			if minterName != "" {
				p.Minter = strings.ToLower(minterName)
				if err := p.Validate(); err != nil {
					return err
				}
			}

			minter := p.NewMinter(ctx.logger)
			painter := canvas.NewPainter(minter, canvas.WithLogger(ctx.logger))
			c, err := p.Apply(painter, minter)
			if err != nil {
				return err
			}
			ctx.logger.Info().
				Str("canvas", c.ID()).
				Int("painting_pages", len(c.PaintingPages())).
				Int("supplementing_pages", len(c.SupplementingPages())).
				Msg("canvas built")

			if validate {
				if err := canvas.NewSchemaValidator().ValidateCanvas(c); err != nil {
					return err
				}
			}

			var buf bytes.Buffer
			switch format {
			case formatCBOR:
				err = cbor.NewWriter(&buf).WriteCanvas(c)
			default:
				err = encodeJSON(&buf, c)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format (json or cbor)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the canvas to this file instead of stdout")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate the canvas against the bundled JSON schema")
	cmd.Flags().StringVar(&minterName, "minter", "", "Override the plan's minter (noid or uuid)")

	return cmd
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
