package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk YAML form of a catalog:
//
//	version: 1.0.0
//	sections:
//	  - name: Strings
//	    weight: 40
//	    groups:
//	      - name: Violins
//	        weight: 1
//	        instruments:
//	          - {id: 1, abbreviation: Vln, name: Violin, weight: 1, primary: true, aliases: [Vn]}
type Document struct {
	Version  string            `yaml:"version"`
	Sections []SectionDocument `yaml:"sections"`
}

type SectionDocument struct {
	Name   string          `yaml:"name"`
	Weight int             `yaml:"weight"`
	Groups []GroupDocument `yaml:"groups"`
}

type GroupDocument struct {
	Name        string               `yaml:"name"`
	Weight      int                  `yaml:"weight"`
	Instruments []InstrumentDocument `yaml:"instruments"`
}

type InstrumentDocument struct {
	ID           int64    `yaml:"id"`
	Abbreviation string   `yaml:"abbreviation"`
	Name         string   `yaml:"name"`
	Weight       int      `yaml:"weight"`
	Primary      bool     `yaml:"primary"`
	Aliases      []string `yaml:"aliases"`
}

// Instruments flattens the document, copying section and group names and
// weights onto each instrument.
func (d *Document) Instruments() []Instrument {
	var out []Instrument
	for _, s := range d.Sections {
		for _, g := range s.Groups {
			for _, i := range g.Instruments {
				out = append(out, Instrument{
					ID:            i.ID,
					Abbreviation:  i.Abbreviation,
					Name:          i.Name,
					Section:       s.Name,
					Group:         g.Name,
					SectionWeight: s.Weight,
					GroupWeight:   g.Weight,
					Weight:        i.Weight,
					Primary:       i.Primary,
					Aliases:       i.Aliases,
				})
			}
		}
	}
	return out
}

// Parse validates and decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Instruments())
}

// Read parses a catalog document from r.
func Read(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// LoadFile parses the catalog document at path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
