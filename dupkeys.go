package mappable

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/mappable/i18n"
)

// Duplicates controls how ParseJSON treats an object key that appears more
// than once. Decoding keeps the last occurrence regardless.
type Duplicates int

const (
	DuplicatesIgnore Duplicates = iota
	DuplicatesWarn              // record duplicate_key issues on the hydrated object
	DuplicatesError             // reject the document
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	path         string
	keys         map[string]struct{}
	lastKey      string
	index        int
	expectingKey bool
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// DetectDuplicateKeys scans a JSON document and reports every repeated object
// key as a duplicate_key issue whose path points at the repeated member.
func DetectDuplicateKeys(data []byte) (Issues, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var iss Issues
	var stack []dupFrame
	valuePath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == kindObject {
			return top.path + "/" + pointerEscaper.Replace(top.lastKey)
		}
		return top.path + "/" + strconv.Itoa(top.index)
	}
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.kind == kindObject {
			top.expectingKey = true
		} else {
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return iss, nil
		}
		if err != nil {
			return iss, err
		}
		switch v := tok.(type) {
		case gojson.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: kindObject, path: valuePath(), keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{kind: kindArray, path: valuePath()})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].kind == kindObject && stack[n-1].expectingKey {
				top := &stack[n-1]
				if _, dup := top.keys[v]; dup {
					path := top.path + "/" + pointerEscaper.Replace(v)
					iss = append(iss, Issue{
						Path:    path,
						Code:    CodeDuplicateKey,
						Message: i18n.T(CodeDuplicateKey, map[string]string{"key": v}),
					})
				}
				top.keys[v] = struct{}{}
				top.lastKey = v
				top.expectingKey = false
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
}
