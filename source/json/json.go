// Package json provides a mappable.JSONDriver backed by the standard
// library's encoding/json.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/reoring/mappable"
)

// Driver returns the encoding/json driver. Install it with
// mappable.SetJSONDriver.
func Driver() mappable.JSONDriver { return driver{} }

type driver struct{}

func (driver) Unmarshal(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// reject trailing content after the first document
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("json: trailing data after top-level value")
		}
		return nil, err
	}
	return v, nil
}

func (driver) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (driver) Name() string                  { return "encoding/json" }
