package mappable

import (
	"bytes"
	"sync"

	gojson "github.com/goccy/go-json"
)

// JSONDriver decodes raw documents and encodes serialized objects through a
// pluggable SPI. The default implementation is based on goccy/go-json and may
// be swapped with SetJSONDriver.
type JSONDriver interface {
	// Unmarshal decodes data into generic values (map[string]any, []any,
	// json.Number, string, bool, nil).
	Unmarshal(data []byte) (any, error)
	Marshal(v any) ([]byte, error)
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver in use.
func CurrentJSONDriver() JSONDriver { return getJSONDriver() }

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) Unmarshal(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (defaultJSONDriver) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }
func (defaultJSONDriver) Name() string                  { return "go-json" }
