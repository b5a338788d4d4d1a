package schemafile

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/rulekit"
)

// DecodeDocument decodes the object to validate. Input starting with '{'
// is read as JSON, anything else as YAML. Numbers arrive as float64 (JSON)
// or int/float64 (YAML).
func DecodeDocument(data []byte) (rulekit.Object, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrInvalidDocument
	}

	var obj map[string]any
	var err error
	if data[0] == '{' {
		err = json.Unmarshal(data, &obj)
	} else {
		err = yaml.Unmarshal(data, &obj)
	}
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if obj == nil {
		return nil, ErrInvalidDocument
	}
	return rulekit.Object(obj), nil
}
