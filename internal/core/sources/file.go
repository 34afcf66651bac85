package sources

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/cleanload/internal/core"
	"gopkg.in/yaml.v3"
)

// fileDoc is the YAML layout of a source definition file.
type fileDoc struct {
	Sources []sourceDoc `yaml:"sources"`
}

type sourceDoc struct {
	Name         string     `yaml:"name"`
	File         string     `yaml:"file"`
	Output       string     `yaml:"output"`
	Fields       []fieldDoc `yaml:"fields"`
	DateColumns  []string   `yaml:"date_columns"`
	ConvertDates []string   `yaml:"convert_dates"`
	IntColumns   []string   `yaml:"int_columns"`
	PassThrough  bool       `yaml:"pass_through"`
}

type fieldDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FromConfig returns the built-in sources when path is empty, otherwise the
// sources defined in the YAML file at path.
func FromConfig(path string) (*core.Registry, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Load reads a YAML source definition file.
func Load(path string) (*core.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source file: %w", err)
	}
	r, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("source file %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes source definitions from YAML. Unknown keys are rejected.
func Parse(r io.Reader) (*core.Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc fileDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no sources defined")
		}
		return nil, err
	}
	if len(doc.Sources) == 0 {
		return nil, errors.New("no sources defined")
	}

	reg := core.NewRegistry()
	for _, sd := range doc.Sources {
		src, err := sd.toSource()
		if err != nil {
			return nil, err
		}
		if err := reg.Register(src); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (sd sourceDoc) toSource() (core.Source, error) {
	src := core.Source{
		Name:         sd.Name,
		File:         sd.File,
		Output:       sd.Output,
		DateColumns:  sd.DateColumns,
		ConvertDates: sd.ConvertDates,
		IntColumns:   sd.IntColumns,
		PassThrough:  sd.PassThrough,
	}
	for _, fd := range sd.Fields {
		t, ok := core.ParseFieldType(fd.Type)
		if !ok {
			return core.Source{}, fmt.Errorf("source %q: field %q: unknown type %q", sd.Name, fd.Name, fd.Type)
		}
		src.Fields = append(src.Fields, core.FieldSpec{Name: fd.Name, Type: t})
	}
	return src, nil
}
