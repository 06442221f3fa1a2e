package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/filegrind/iiifpres-go/cbor"
	"github.com/spf13/cobra"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the pages and annotations of a canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if format == "" {
				format = formatJSON
				if strings.EqualFold(filepath.Ext(args[0]), "."+formatCBOR) {
					format = formatCBOR
				}
			}

			var canvases []*canvas.Canvas
			switch strings.ToLower(format) {
			case formatCBOR:
				canvases, err = cbor.NewReader(bytes.NewReader(data)).ReadAll()
			case formatJSON:
				var c canvas.Canvas
				if err = json.Unmarshal(data, &c); err == nil {
					canvases = append(canvases, &c)
				}
			default:
				err = fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatCBOR)
			}
			if err != nil {
				return err
			}
			ctx.logger.Debug().Int("canvases", len(canvases)).Str("format", format).Msg("decoded")

			out := cmd.OutOrStdout()
			for _, c := range canvases {
				fmt.Fprintln(out, describeCanvas(c))
				fmt.Fprintln(out, renderTable(
					[]string{"List", "#", "Page", "Annotation", "Motivation", "Target", "Body"},
					annotationRows(c),
					[]columnAlignment{alignLeft, alignRight},
				))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format (json or cbor); guessed from the extension when empty")

	return cmd
}

func describeCanvas(c *canvas.Canvas) string {
	var parts []string
	if c.Width() > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", c.Width(), c.Height()))
	}
	if c.Duration() > 0 {
		parts = append(parts, strconv.FormatFloat(c.Duration(), 'f', -1, 64)+"s")
	}
	parts = append(parts, c.ExtentKind().String())
	if c.Label() != "" {
		return fmt.Sprintf("%s %q (%s)", c.ID(), c.Label(), strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s (%s)", c.ID(), strings.Join(parts, ", "))
}

func annotationRows(c *canvas.Canvas) [][]string {
	var rows [][]string
	lists := []struct {
		name  string
		pages []*canvas.AnnotationPage
	}{
		{"items", c.PaintingPages()},
		{"annotations", c.SupplementingPages()},
	}
	for _, list := range lists {
		for i, page := range list.pages {
			for _, a := range page.Annotations() {
				rows = append(rows, []string{
					list.name,
					strconv.Itoa(i + 1),
					page.ID(),
					a.ID(),
					string(a.Motivation()),
					a.Target().String(),
					describeBody(a.Body()),
				})
			}
		}
	}
	return rows
}

func describeBody(body canvas.Body) string {
	names := make([]string, 0, len(body.Resources()))
	for _, r := range body.Resources() {
		if r == nil {
			names = append(names, "rdf:nil")
			continue
		}
		names = append(names, r.String())
	}
	if _, ok := body.(canvas.Choice); ok {
		return "Choice[" + strings.Join(names, " | ") + "]"
	}
	return strings.Join(names, "")
}
