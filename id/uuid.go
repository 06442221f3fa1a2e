package id

import (
	"strings"

	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/google/uuid"
)

// UUIDMinter mints {base}/{uuid} ids from random (version 4) UUIDs
type UUIDMinter struct {
	base string
}

// NewUUIDMinter creates a UUID minter for ids under base
func NewUUIDMinter(base string) *UUIDMinter {
	return &UUIDMinter{base: strings.TrimSuffix(base, "/")}
}

// Next mints a new id
func (m *UUIDMinter) Next() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return m.base + "/" + u.String(), nil
}

var _ canvas.Minter = (*UUIDMinter)(nil)
