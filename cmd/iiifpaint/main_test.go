package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/filegrind/iiifpres-go/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlan = `
base_id = "https://example.org/iiif/book1"
seed = 3

[canvas]
id = "https://example.org/iiif/book1/canvas-1"
width = 480
height = 360

[[paint]]
  [[paint.content]]
  id = "https://example.org/images/p1.jpg"

  [[paint.content]]
  id = "https://example.org/images/p1.png"

[[supplement]]
selector = "xywh=0,0,240,180"
  [[supplement.content]]
  id = "https://example.org/text/p1.txt"
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestPlan(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// TEST500: Test paint writes a validated canvas as JSON
func TestPaintCommandWritesJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "paint", writeTestPlan(t, testPlan), "--validate")
	require.NoError(t, err)

	var c canvas.Canvas
	require.NoError(t, json.Unmarshal([]byte(stdout), &c))
	require.Len(t, c.PaintingPages(), 1)
	_, isChoice := c.PaintingPages()[0].Annotations()[0].Body().(canvas.Choice)
	assert.True(t, isChoice)
	assert.Len(t, c.SupplementingPages(), 1)
}

// TEST501: Test paint writes CBOR to a file that inspect can read back
func TestPaintCommandCBORRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "canvas.cbor")
	_, _, err := runCLI(t, "paint", writeTestPlan(t, testPlan), "--format", "cbor", "--out", out, "--minter", "uuid")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	canvases, err := cbor.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, canvases, 1)

	stdout, _, err := runCLI(t, "inspect", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "https://example.org/iiif/book1/canvas-1 (480x360, spatial)")
	assert.Contains(t, stdout, "Choice[Image <https://example.org/images/p1.jpg> | Image <https://example.org/images/p1.png>]")
	assert.Contains(t, stdout, "#xywh=0,0,240,180")
}

// TEST502: Test paint reports bounds failures and logs them when verbose
func TestPaintCommandReportsBoundsError(t *testing.T) {
	body := strings.Replace(testPlan, `selector = "xywh=0,0,240,180"`, `selector = "t=0,10"`, 1)
	_, stderr, err := runCLI(t, "--verbose", "paint", writeTestPlan(t, body))
	require.Error(t, err)

	var selErr *canvas.SelectorOutOfBoundsError
	assert.ErrorAs(t, err, &selErr)
	assert.Contains(t, stderr, "paint rejected")
}

// TEST503: Test fragment prints the canonical form and kind
func TestFragmentCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "fragment", "t=1.50,3&xywh=pixel:0,0,10,10")
	require.NoError(t, err)
	assert.Equal(t, "xywh=0,0,10,10&t=1.5,3\tspatiotemporal\n", stdout)

	stdout, _, err = runCLI(t, "fragment", "--json", "t=0,1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FragmentSelector","conformsTo":"http://www.w3.org/TR/media-frags/","value":"t=0,1"}`, stdout)

	_, _, err = runCLI(t, "fragment", "xywh=1,2,3")
	assert.Error(t, err)
}

// TEST504: Test unknown formats are rejected before any work is done
func TestPaintCommandRejectsUnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "paint", writeTestPlan(t, testPlan), "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
