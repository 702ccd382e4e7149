package validate

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
)

// DecodeJSON decodes raw JSON into the value form validators operate on.
// Numbers are decoded as json.Number so integer-only and bounds checks do not
// lose precision through float64.
func DecodeJSON(data []byte) (any, error) {
	return DecodeJSONReader(bytes.NewReader(data))
}

// DecodeJSONReader decodes JSON from a reader. See DecodeJSON.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeJSON encodes a value back to JSON. It is the inverse of DecodeJSON
// and is used by generated clients when marshaling request bodies.
func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}
