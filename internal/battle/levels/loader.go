// Package levels loads battle templates and levels from YAML files.
// The embedded pack under data/ is always available; a directory may add to
// or override it.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/levels/formats"
)

//go:embed data/*.yaml
var embedded embed.FS

// Pack is a set of templates and the levels that use them.
type Pack struct {
	Catalog *defs.Catalog
	Levels  []*defs.Level
	// Skipped holds one error per file or level that could not be used.
	Skipped []error
}

// Level returns the level with the given id.
func (p *Pack) Level(id string) (*defs.Level, error) {
	for _, lvl := range p.Levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("level not found: %s", id)
}

// IDs returns all level IDs in sorted order.
func (p *Pack) IDs() []string {
	ids := make([]string, len(p.Levels))
	for i, lvl := range p.Levels {
		ids[i] = lvl.ID
	}
	return ids
}

// Loader handles loading battle files from a file system.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: "."}
}

// Embedded returns a loader for the built-in pack.
func Embedded() *Loader {
	return &Loader{FS: embedded, Root: "data"}
}

// Load reads the built-in pack and, if dir is not empty, merges the files
// found there over it.
func Load(dir string) (*Pack, error) {
	pack, err := Embedded().scan()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		pack.validate()
		return pack, nil
	}
	extra, err := NewLoader(dir).scan()
	if err != nil {
		return nil, err
	}
	return merge(pack, extra), nil
}

// LoadAll recursively scans the loader root. Files that fail to parse and
// levels that fail validation are recorded in Skipped.
// Levels are sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() (*Pack, error) {
	pack, err := l.scan()
	if err != nil {
		return nil, err
	}
	pack.validate()
	return pack, nil
}

// scan parses every supported file under the root without validating levels.
func (l *Loader) scan() (*Pack, error) {
	var docs []formats.Document
	var skipped []error

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		doc, err := l.LoadFile(p)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		if doc.Level != nil {
			doc.Level.FilePath = p
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Templates first so levels in any file can reference them.
	pack := &Pack{Catalog: defs.NewCatalog(), Skipped: skipped}
	for _, doc := range docs {
		pack.Catalog.Merge(doc.Catalog)
	}
	for _, doc := range docs {
		if doc.Level != nil {
			pack.Levels = append(pack.Levels, doc.Level)
		}
	}
	return pack, nil
}

// LoadFile loads a single battle file.
func (l *Loader) LoadFile(p string) (formats.Document, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return formats.Document{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	doc, err := parseByExtension(data, ext)
	if err != nil {
		return formats.Document{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return doc, nil
}

// validate drops levels that do not pass Validate and sorts the rest.
func (p *Pack) validate() {
	kept := p.Levels[:0]
	for _, lvl := range p.Levels {
		if err := Validate(lvl, p.Catalog); err != nil {
			p.Skipped = append(p.Skipped, fmt.Errorf("level %s: %w", lvl.ID, err))
			continue
		}
		kept = append(kept, lvl)
	}
	p.Levels = kept
	sort.Slice(p.Levels, func(i, j int) bool {
		return p.Levels[i].ID < p.Levels[j].ID
	})
}

// merge overlays extra on base. Levels with the same ID are replaced.
func merge(base, extra *Pack) *Pack {
	out := &Pack{Catalog: defs.NewCatalog()}
	out.Catalog.Merge(base.Catalog)
	out.Catalog.Merge(extra.Catalog)
	out.Skipped = append(append(out.Skipped, base.Skipped...), extra.Skipped...)

	byID := make(map[string]*defs.Level)
	for _, lvl := range base.Levels {
		byID[lvl.ID] = lvl
	}
	for _, lvl := range extra.Levels {
		byID[lvl.ID] = lvl
	}
	for _, lvl := range byID {
		out.Levels = append(out.Levels, lvl)
	}
	out.validate()
	return out
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Document, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Document{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
