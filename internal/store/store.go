// Package store reads and writes diagram documents. TOML is the native
// format; YAML is accepted for files ending in .yaml or .yml.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/sprig/internal/tree"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written into every file. Files from a newer version are refused.
const FormatVersion = 1

var (
	ErrUnknownFormat      = errors.New("unknown diagram file format")
	ErrUnsupportedVersion = errors.New("unsupported diagram file version")
)

// Format identifies an on-disk encoding.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// FormatFor picks the format from a file extension. A path without an
// extension is TOML.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return TOML, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// file is the top-level shape of a diagram file.
type file struct {
	Version int              `toml:"format_version" yaml:"format_version"`
	Trees   []*tree.Instance `toml:"tree,omitempty" yaml:"trees,omitempty"`
}

// Encode writes doc to w.
func Encode(w io.Writer, doc tree.Document, format Format) error {
	f := file{Version: FormatVersion, Trees: doc}
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case TOML:
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
}

// Decode reads a document from r and checks its structural invariants.
func Decode(r io.Reader, format Format) (tree.Document, error) {
	var f file
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decoding toml: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}

	if f.Version > FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Version)
	}
	doc := tree.Document(f.Trees)
	for i, inst := range doc {
		if inst == nil || inst.Root == nil {
			return nil, fmt.Errorf("tree %d: %w", i, tree.ErrMissingRoot)
		}
		inst.Root.Root = true
		tree.AssignMissingIDs(inst.Root) // hand-written files may omit ids
	}
	if err := tree.ValidateDocument(doc); err != nil {
		return nil, fmt.Errorf("invalid diagram: %w", err)
	}
	if doc == nil {
		doc = tree.Document{}
	}
	return doc, nil
}

// Marshal returns the encoded bytes of doc.
func Marshal(doc tree.Document, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads the diagram at path, choosing the format by extension.
// A missing file yields an error wrapping os.ErrNotExist.
func Load(path string) (tree.Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", path, err)
	}
	defer fh.Close()

	doc, err := Decode(fh, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load '%s': %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path. The file is written next to the target and
// renamed into place so a failed write leaves the old file intact.
func Save(path string, doc tree.Document) error {
	if path == "" {
		return errors.New("no file path specified for saving")
	}
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return fmt.Errorf("failed to save '%s': %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return nil
}
