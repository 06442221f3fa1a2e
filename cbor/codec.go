// Package cbor is a binary encoding of canvases and annotation pages. A
// document carries the same keys and values as the JSON form, so anything
// that round-trips through JSON round-trips through CBOR.
package cbor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/fxamacker/cbor/v2"
)

// SizeError reports a document larger than the configured limit
type SizeError struct {
	Size  int
	Limit int
	What  string
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s size %d exceeds limit %d", e.What, e.Size, e.Limit)
}

var typeOfGenericMap = reflect.TypeOf(map[string]interface{}(nil))

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType:  typeOfGenericMap,
		MaxNestedLevels: 64,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// EncodeCanvas encodes a canvas to CBOR bytes
func EncodeCanvas(c *canvas.Canvas) ([]byte, error) {
	return encode(c)
}

// DecodeCanvas decodes CBOR bytes to a Canvas. The same checks as JSON
// decoding apply.
func DecodeCanvas(data []byte) (*canvas.Canvas, error) {
	var c canvas.Canvas
	if err := decode(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// EncodePage encodes one annotation page to CBOR bytes
func EncodePage(p *canvas.AnnotationPage) ([]byte, error) {
	return encode(p)
}

// DecodePage decodes CBOR bytes to an AnnotationPage
func DecodePage(data []byte) (*canvas.AnnotationPage, error) {
	var p canvas.AnnotationPage
	if err := decode(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// encode goes through the JSON form so that the field names and value
// checks live in one place
func encode(v json.Marshaler) ([]byte, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}

	return encMode.Marshal(fromJSON(generic))
}

func decode(data []byte, v json.Unmarshaler) error {
	var generic interface{}
	if err := decMode.Unmarshal(data, &generic); err != nil {
		return err
	}
	if _, ok := generic.(map[string]interface{}); !ok {
		return fmt.Errorf("expected a CBOR map, got %T", generic)
	}

	asJSON, err := json.Marshal(generic)
	if err != nil {
		return err
	}
	return v.UnmarshalJSON(asJSON)
}

// fromJSON replaces json.Number with the narrowest CBOR-friendly value:
// integers become int64, everything else float64
func fromJSON(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		for k, item := range value {
			value[k] = fromJSON(item)
		}
		return value
	case []interface{}:
		for i, item := range value {
			value[i] = fromJSON(item)
		}
		return value
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return i
		}
		if f, err := value.Float64(); err == nil && !math.IsInf(f, 0) {
			return f
		}
		return value.String()
	default:
		return v
	}
}
