package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/modgraph/pkg/curriculum"
	"github.com/matzehuels/modgraph/pkg/errors"
)

// DefaultFile is the document read when no path is given.
const DefaultFile = "modules.json"

// document is the format-independent shape of a curriculum file.
type document struct {
	Modules    map[string]curriculum.ModuleSpec    `mapstructure:"modules"`
	Programmes map[string]curriculum.ProgrammeSpec `mapstructure:"programmes"`
}

// ReadJSON decodes a JSON curriculum document from r.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*curriculum.Catalog, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "decode JSON")
	}
	return decode(raw)
}

// ReadTOML decodes a TOML curriculum document from r.
func ReadTOML(r io.Reader) (*curriculum.Catalog, error) {
	var raw map[string]any
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "decode TOML")
	}
	return decode(raw)
}

// ImportFile reads the curriculum document at path, choosing the decoder by
// extension. Every failure is a CONFIG_LOAD error naming path.
func ImportFile(path string) (*curriculum.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "read %s", path)
	}

	var c *curriculum.Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		c, err = ReadTOML(bytes.NewReader(data))
	case ".hcl":
		c, err = ReadHCL(data, path)
	default:
		c, err = ReadJSON(bytes.NewReader(data))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "load %s", path)
	}
	return c, nil
}

// decode maps a generic document onto module and programme specs and builds
// the catalog.
func decode(raw map[string]any) (*curriculum.Catalog, error) {
	if _, ok := raw["programmes"]; !ok {
		return nil, errors.New(errors.ErrCodeConfigLoad, `document has no "programmes" mapping`)
	}

	var doc document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       dependencyHook,
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, err, "decode document")
	}

	c, err := curriculum.NewCatalog(doc.Modules, doc.Programmes)
	if err != nil {
		return nil, err
	}
	return c, nil
}

var dependencyType = reflect.TypeOf(curriculum.Dependency{})

// dependencyHook decodes a dependency entry: a module name is a single
// module, a list of names is a choice between alternatives. Numbers are
// module names too, written the way they appear in the document.
func dependencyHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != dependencyType {
		return data, nil
	}
	if id, ok := identifier(data); ok {
		return curriculum.Single(id), nil
	}
	switch v := data.(type) {
	case []string:
		return curriculum.OneOf(v...), nil
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := identifier(item)
			if !ok {
				return nil, fmt.Errorf("choice entry %v: alternatives must be module names", v)
			}
			ids = append(ids, s)
		}
		return curriculum.OneOf(ids...), nil
	case curriculum.Dependency:
		return v, nil
	default:
		return nil, fmt.Errorf("dependency entry %v: must be a module name or a list of alternatives", data)
	}
}

// identifier returns v as a module name when it is a string or a number.
func identifier(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}
