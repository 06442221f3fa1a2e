package cbor

import (
	"encoding/binary"
	"io"

	"github.com/filegrind/iiifpres-go/canvas"
)

// Reader reads length-prefixed CBOR canvas documents from a stream
type Reader struct {
	reader io.Reader
	limits Limits
}

// NewReader creates a new Reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		reader: r,
		limits: DefaultLimits(),
	}
}

// SetLimits updates the reader's limits
func (cr *Reader) SetLimits(limits Limits) {
	cr.limits = limits
}

// ReadCanvas reads a single canvas from the stream. It returns io.EOF when
// the stream ends cleanly between documents.
func (cr *Reader) ReadCanvas() (*canvas.Canvas, error) {
	// 4-byte big-endian length prefix
	var lengthBuf [4]byte
	if _, err := io.ReadFull(cr.reader, lengthBuf[:]); err != nil {
		return nil, err
	}

	length := int(binary.BigEndian.Uint32(lengthBuf[:]))
	if err := cr.limits.check(length, "document"); err != nil {
		return nil, err
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(cr.reader, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	return DecodeCanvas(buf)
}

// ReadAll reads canvases until the stream ends
func (cr *Reader) ReadAll() ([]*canvas.Canvas, error) {
	var canvases []*canvas.Canvas
	for {
		c, err := cr.ReadCanvas()
		if err == io.EOF {
			return canvases, nil
		}
		if err != nil {
			return canvases, err
		}
		canvases = append(canvases, c)
	}
}

// Writer writes length-prefixed CBOR canvas documents to a stream
type Writer struct {
	writer io.Writer
	limits Limits
}

// NewWriter creates a new Writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: w,
		limits: DefaultLimits(),
	}
}

// SetLimits updates the writer's limits
func (cw *Writer) SetLimits(limits Limits) {
	cw.limits = limits
}

// WriteCanvas writes a single canvas to the stream
func (cw *Writer) WriteCanvas(c *canvas.Canvas) error {
	buf, err := EncodeCanvas(c)
	if err != nil {
		return err
	}
	if err := cw.limits.check(len(buf), "encoded document"); err != nil {
		return err
	}

	var lengthBuf [4]byte
	binary.BigEndian.PutUint32(lengthBuf[:], uint32(len(buf)))
	if _, err := cw.writer.Write(lengthBuf[:]); err != nil {
		return err
	}
	if _, err := cw.writer.Write(buf); err != nil {
		return err
	}

	return nil
}
