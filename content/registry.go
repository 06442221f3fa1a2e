package content

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/filegrind/iiifpres-go/standard"
)

// FormatEntry binds a MIME format, and the file extensions that usually
// carry it, to a content resource type
type FormatEntry struct {
	Format     string
	Type       Type
	Extensions []string
}

// Registry resolves content resource types from formats and file
// extensions. A registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	formats  map[string]Type
	extIndex map[string]string // lowercase extension -> format
}

// NewRegistry creates a registry with the bundled standard formats installed
func NewRegistry() *Registry {
	r := NewRegistryForTest()
	for _, entry := range bundledFormats() {
		if err := r.Register(entry); err != nil {
			panic(err)
		}
	}
	return r
}

// NewRegistryForTest creates an empty registry
func NewRegistryForTest() *Registry {
	return &Registry{
		formats:  make(map[string]Type),
		extIndex: make(map[string]string),
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, created on first use
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds or replaces a format entry
func (r *Registry) Register(entry FormatEntry) error {
	format := normalizeFormat(entry.Format)
	if format == "" || !strings.Contains(format, "/") {
		return &ResourceError{
			Code:    ErrorUnknownFormat,
			Message: fmt.Sprintf("format '%s' is not a MIME type", entry.Format),
		}
	}
	if !entry.Type.IsValid() {
		return NewUnknownTypeError(string(entry.Type))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.formats[format] = entry.Type
	for _, ext := range entry.Extensions {
		r.extIndex[normalizeExtension(ext)] = format
	}
	return nil
}

// TypeForFormat returns the resource type for a MIME format. Formats that
// are not registered fall back on their top-level media type (image/*,
// audio/*, video/*, model/*, text/*).
func (r *Registry) TypeForFormat(format string) (Type, bool) {
	format = normalizeFormat(format)

	r.mu.RLock()
	t, ok := r.formats[format]
	r.mu.RUnlock()
	if ok {
		return t, true
	}

	major, _, found := strings.Cut(format, "/")
	if !found {
		return "", false
	}
	switch major {
	case "image":
		return TypeImage, true
	case "audio":
		return TypeSound, true
	case "video":
		return TypeVideo, true
	case "model":
		return TypeModel, true
	case "text":
		return TypeText, true
	}
	return "", false
}

// FormatForExtension returns the registered format for a file extension.
// The extension may be given with or without its leading dot.
func (r *Registry) FormatForExtension(ext string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	format, ok := r.extIndex[normalizeExtension(ext)]
	return format, ok
}

// Infer works out a resource's type and format. An explicit format wins;
// otherwise the extension of the resource's URI path is consulted.
func (r *Registry) Infer(id, format string) (Type, string, error) {
	if format == "" {
		var ok bool
		format, ok = r.FormatForExtension(path.Ext(uriPath(id)))
		if !ok {
			return "", "", &ResourceError{
				Code:    ErrorUnknownFormat,
				ID:      id,
				Message: fmt.Sprintf("cannot infer a format for resource '%s'", id),
			}
		}
	}

	t, ok := r.TypeForFormat(format)
	if !ok {
		return "", "", &ResourceError{
			Code:    ErrorUnknownFormat,
			ID:      id,
			Message: fmt.Sprintf("format '%s' of resource '%s' does not map to a content type", format, id),
		}
	}
	return t, format, nil
}

// Formats returns the number of registered formats
func (r *Registry) Formats() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.formats)
}

func normalizeFormat(format string) string {
	// Drop parameters such as "; charset=utf-8"
	if i := strings.IndexByte(format, ';'); i >= 0 {
		format = format[:i]
	}
	return strings.ToLower(strings.TrimSpace(format))
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func uriPath(id string) string {
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		id = id[:i]
	}
	return id
}

func bundledFormats() []FormatEntry {
	return []FormatEntry{
		{Format: standard.FormatJPEG, Type: TypeImage, Extensions: []string{"jpg", "jpeg"}},
		{Format: standard.FormatPNG, Type: TypeImage, Extensions: []string{"png"}},
		{Format: standard.FormatTIFF, Type: TypeImage, Extensions: []string{"tif", "tiff"}},
		{Format: standard.FormatJP2, Type: TypeImage, Extensions: []string{"jp2"}},
		{Format: standard.FormatWebP, Type: TypeImage, Extensions: []string{"webp"}},
		{Format: standard.FormatGIF, Type: TypeImage, Extensions: []string{"gif"}},
		{Format: standard.FormatMP3, Type: TypeSound, Extensions: []string{"mp3"}},
		{Format: standard.FormatMP4Audio, Type: TypeSound, Extensions: []string{"m4a"}},
		{Format: standard.FormatWAV, Type: TypeSound, Extensions: []string{"wav"}},
		{Format: standard.FormatOgg, Type: TypeSound, Extensions: []string{"ogg", "oga"}},
		{Format: standard.FormatFLAC, Type: TypeSound, Extensions: []string{"flac"}},
		{Format: standard.FormatMP4, Type: TypeVideo, Extensions: []string{"mp4", "m4v"}},
		{Format: standard.FormatWebM, Type: TypeVideo, Extensions: []string{"webm"}},
		{Format: standard.FormatQuickTime, Type: TypeVideo, Extensions: []string{"mov"}},
		{Format: standard.FormatPlainText, Type: TypeText, Extensions: []string{"txt"}},
		{Format: standard.FormatHTML, Type: TypeText, Extensions: []string{"html", "htm"}},
		{Format: standard.FormatVTT, Type: TypeText, Extensions: []string{"vtt"}},
		{Format: standard.FormatPDF, Type: TypeText, Extensions: []string{"pdf"}},
		{Format: standard.FormatJSON, Type: TypeDataset, Extensions: []string{"json"}},
		{Format: standard.FormatCSV, Type: TypeDataset, Extensions: []string{"csv"}},
		{Format: standard.FormatXML, Type: TypeDataset, Extensions: []string{"xml"}},
		{Format: standard.FormatGLTF, Type: TypeModel, Extensions: []string{"gltf"}},
		{Format: standard.FormatGLB, Type: TypeModel, Extensions: []string{"glb"}},
		{Format: standard.FormatOBJ, Type: TypeModel, Extensions: []string{"obj"}},
	}
}
