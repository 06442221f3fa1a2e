// Package id mints identifiers for the canvases, annotation pages and
// annotations created while painting.
package id

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/rs/zerolog"
)

// ErrMinterExhausted is returned once every NOID has been handed out
var ErrMinterExhausted = errors.New("minter has no ids left")

// noidChars excludes 'l', which is easily confused with '1'
const noidChars = "abcdefghijkmnopqrstuvwxyz1234567890"

const noidLength = 4

// NoidCount is the number of distinct NOIDs a DefaultMinter can produce
const NoidCount = 35 * 35 * 35 * 35

const (
	canvasTemplate         = "%s/canvas-%s"
	annotationTemplate     = "%s/annotations/anno-%s"
	annotationPageTemplate = "%s/anno-page-%s"
)

// DefaultMinter mints short opaque ids (NOIDs) under a base URI. NOIDs are
// visited in a seeded pseudo-random order that covers every NOID exactly
// once. Ids registered as existing are never returned.
//
// DefaultMinter is safe for concurrent use.
type DefaultMinter struct {
	mu       sync.Mutex
	base     string
	start    int
	step     int
	drawn    int
	existing map[string]struct{}
	logger   zerolog.Logger
}

// Option configures a DefaultMinter
type Option func(*defaultMinterConfig)

type defaultMinterConfig struct {
	seed     int64
	seeded   bool
	existing []string
	logger   zerolog.Logger
}

// WithSeed fixes the order in which NOIDs are visited
func WithSeed(seed int64) Option {
	return func(c *defaultMinterConfig) {
		c.seed = seed
		c.seeded = true
	}
}

// WithExisting registers ids that are already in use
func WithExisting(ids ...string) Option {
	return func(c *defaultMinterConfig) {
		c.existing = append(c.existing, ids...)
	}
}

// WithCanvas registers the canvas id and the ids of every page and
// annotation already on the canvas
func WithCanvas(c *canvas.Canvas) Option {
	return func(cfg *defaultMinterConfig) {
		cfg.existing = append(cfg.existing, CanvasIDs(c)...)
	}
}

// WithLogger sets the logger used to report skipped and duplicate ids
func WithLogger(logger zerolog.Logger) Option {
	return func(c *defaultMinterConfig) {
		c.logger = logger
	}
}

// NewDefaultMinter creates a NOID minter for ids under base, which is
// usually a manifest id
func NewDefaultMinter(base string, opts ...Option) *DefaultMinter {
	cfg := defaultMinterConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.seeded {
		cfg.seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	m := &DefaultMinter{
		base:     strings.TrimSuffix(base, "/"),
		start:    rng.Intn(NoidCount),
		step:     coprimeStep(rng),
		existing: make(map[string]struct{}, len(cfg.existing)),
		logger:   cfg.logger,
	}
	for _, existing := range cfg.existing {
		if _, dup := m.existing[existing]; dup {
			m.logger.Warn().Str("id", existing).Msg("id registered more than once")
			continue
		}
		m.existing[existing] = struct{}{}
	}
	m.logger.Debug().Str("base", m.base).Int("start", m.start).Int("step", m.step).Msg("minter created")
	return m
}

// coprimeStep picks a stride sharing no factor with NoidCount (5^4 * 7^4),
// so that start + i*step visits every index once before repeating
func coprimeStep(rng *rand.Rand) int {
	for {
		step := 1 + rng.Intn(NoidCount-1)
		if step%5 != 0 && step%7 != 0 {
			return step
		}
	}
}

func encodeNoid(index int) string {
	var buf [noidLength]byte
	for i := noidLength - 1; i >= 0; i-- {
		buf[i] = noidChars[index%len(noidChars)]
		index /= len(noidChars)
	}
	return string(buf[:])
}

// Base returns the URI that ids are minted under
func (m *DefaultMinter) Base() string { return m.base }

// Size returns the total number of NOIDs
func (m *DefaultMinter) Size() int { return NoidCount }

// Remaining returns how many NOIDs have not yet been drawn
func (m *DefaultMinter) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return NoidCount - m.drawn
}

// HasNext reports whether any NOIDs are left
func (m *DefaultMinter) HasNext() bool {
	return m.Remaining() > 0
}

// mint fills template with the next NOID whose id is not already in use
func (m *DefaultMinter) mint(kind, prefix, template string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.drawn < NoidCount {
		index := int((int64(m.start) + int64(m.drawn)*int64(m.step)) % NoidCount)
		m.drawn++

		id := fmt.Sprintf(template, prefix, encodeNoid(index))
		if _, taken := m.existing[id]; taken {
			m.logger.Debug().Str("id", id).Msg("skipping existing id")
			continue
		}
		m.existing[id] = struct{}{}
		return id, nil
	}
	return "", fmt.Errorf("cannot mint %s id under '%s': %w", kind, prefix, ErrMinterExhausted)
}

// CanvasID mints a canvas id: {base}/canvas-{noid}
func (m *DefaultMinter) CanvasID() (string, error) {
	return m.mint("canvas", m.base, canvasTemplate)
}

// AnnotationID mints an annotation id: {base}/annotations/anno-{noid}
func (m *DefaultMinter) AnnotationID() (string, error) {
	return m.mint("annotation", m.base, annotationTemplate)
}

// AnnotationPageID mints a page id under its canvas:
// {canvas}/anno-page-{noid}
func (m *DefaultMinter) AnnotationPageID(canvasID string) (string, error) {
	return m.mint("annotation page", strings.TrimSuffix(canvasID, "/"), annotationPageTemplate)
}

// Next mints an annotation id
func (m *DefaultMinter) Next() (string, error) {
	return m.AnnotationID()
}

// CanvasIDs lists the ids used by a canvas: its own, then those of its
// pages and their annotations
func CanvasIDs(c *canvas.Canvas) []string {
	ids := []string{c.ID()}
	for _, pages := range [][]*canvas.AnnotationPage{c.PaintingPages(), c.SupplementingPages()} {
		for _, page := range pages {
			ids = append(ids, page.ID())
			for _, a := range page.Annotations() {
				ids = append(ids, a.ID())
			}
		}
	}
	return ids
}

var _ canvas.ResourceMinter = (*DefaultMinter)(nil)
