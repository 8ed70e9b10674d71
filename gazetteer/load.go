package gazetteer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Yogendra14/chatbot-ner/data"
)

// Format is a gazetteer file encoding.
type Format int

const (
	YAML Format = iota // cities: [{name, country, population, aliases}]
	TOML               // [[cities]] tables with the same keys
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("gazetteer: unsupported file extension %q", filepath.Ext(path))
	}
}

// file is the on-disk layout shared by both formats.
type file struct {
	Cities []City `yaml:"cities" toml:"cities"`
}

// Load reads a gazetteer in the given format.
func Load(r io.Reader, format Format, opts ...Option) (*Gazetteer, error) {
	var f file
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, fmt.Errorf("gazetteer: decoding yaml: %w", err)
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("gazetteer: decoding toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("gazetteer: unknown toml key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("gazetteer: unsupported format %s", format)
	}
	return New(f.Cities, opts...)
}

// LoadFile reads a gazetteer from a .yaml, .yml, or .toml file.
func LoadFile(path string, opts ...Option) (*Gazetteer, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: %w", err)
	}
	defer fh.Close()
	return Load(fh, format, opts...)
}

var defaultGazetteer = sync.OnceValues(func() (*Gazetteer, error) {
	return Load(bytes.NewReader(data.Cities), YAML)
})

// Default returns the gazetteer built from the embedded city list.
// It is built on first use and shared afterwards.
func Default() (*Gazetteer, error) {
	return defaultGazetteer()
}
