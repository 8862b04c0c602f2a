package snapshot

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/JonMunkholm/servicediff/internal/core"
)

// Options tune how a source is decoded.
type Options struct {
	// Sheet selects the worksheet of a workbook. Empty means the first sheet.
	Sheet string
}

// DecodeFunc parses a complete source into a table.
type DecodeFunc func(r io.Reader, opts Options) (core.Table, error)

// Format describes a file container the loader understands.
type Format struct {
	Ext    string // lowercase extension including the dot: ".csv"
	Label  string // human-readable name
	Decode DecodeFunc
}

var (
	registry   = make(map[string]Format)
	registryMu sync.RWMutex
)

// Register adds a format to the registry.
// Panics if the extension is already registered.
func Register(f Format) {
	registryMu.Lock()
	defer registryMu.Unlock()

	ext := strings.ToLower(f.Ext)
	if _, exists := registry[ext]; exists {
		panic(fmt.Sprintf("format already registered: %s", ext))
	}
	f.Ext = ext
	registry[ext] = f
}

// Lookup returns the format for a file name or URL, resolved by extension.
// The error wraps core.ErrUnsupportedFormat.
func Lookup(name string) (Format, error) {
	ext := Ext(name)

	registryMu.RLock()
	f, ok := registry[ext]
	registryMu.RUnlock()

	if !ok {
		if ext == "" {
			ext = "(none)"
		}
		return Format{}, fmt.Errorf("%w %s (supported: %s)",
			core.ErrUnsupportedFormat, ext, strings.Join(Extensions(), ", "))
	}
	return f, nil
}

// Extensions returns every registered extension, sorted.
func Extensions() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]string, 0, len(registry))
	for ext := range registry {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Ext returns the lowercase extension of a file name or URL, ignoring any
// query string or fragment.
func Ext(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(path.Ext(name))
}

func init() {
	Register(Format{Ext: ".csv", Label: "Comma-separated values", Decode: decodeCSV})
	Register(Format{Ext: ".tsv", Label: "Tab-separated values", Decode: decodeTSV})
	Register(Format{Ext: ".xlsx", Label: "Excel workbook", Decode: decodeWorkbook})
}
