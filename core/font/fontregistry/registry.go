package fontregistry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/glyphpeek/core/font"
	"github.com/npillmayer/glyphpeek/core/font/raster"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding information about loaded fonts and faces.
type Registry struct {
	sync.Mutex
	fonts map[string]*font.ScalableFont
	faces map[string]raster.Face
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts and faces.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

func NewRegistry() *Registry {
	fr := &Registry{
		fonts: make(map[string]*font.ScalableFont),
		faces: make(map[string]raster.Face),
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
func (fr *Registry) StoreFont(normalizedName string, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[normalizedName]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, normalizedName)
		fr.fonts[normalizedName] = f
	}
}

// Font returns the font registered for a name or path. If no font is
// registered yet, it is loaded (see font.LoadFont) and stored.
func (fr *Registry) Font(nameOrPath string) (*font.ScalableFont, error) {
	key := font.NormalizeFontname(nameOrPath)
	fr.Lock()
	f, ok := fr.fonts[key]
	fr.Unlock()
	if ok {
		tracer().Debugf("registry found font %s", key)
		return f, nil
	}
	f, err := font.LoadFont(nameOrPath)
	if err != nil {
		return nil, err
	}
	fr.StoreFont(key, f)
	fr.Lock()
	defer fr.Unlock()
	return fr.fonts[key], nil
}

// Face returns a face for a font at a pixel size, rendered by a given
// engine. Faces are cached; the font is loaded if necessary.
func (fr *Registry) Face(nameOrPath string, size int, engine raster.Engine) (raster.Face, error) {
	fname := font.NormalizeFontname(nameOrPath)
	key := faceKey(fname, size, engine)
	fr.Lock()
	face, ok := fr.faces[key]
	fr.Unlock()
	if ok {
		tracer().Infof("registry found face %s", key)
		return face, nil
	}
	f, err := fr.Font(nameOrPath)
	if err != nil {
		return nil, err
	}
	face, err = raster.Open(f, raster.WithPixelSize(size), raster.WithEngine(engine))
	if err != nil {
		return nil, err
	}
	fr.Lock()
	defer fr.Unlock()
	if cached, ok := fr.faces[key]; ok {
		return cached, nil
	}
	tracer().Infof("font registry has font %s, caches face at %dpx", fname, size)
	fr.faces[key] = face
	return face, nil
}

// LogFontList is a helper function to dump the list of known fonts and faces
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for _, k := range sortedKeys(fr.fonts) {
		tracer().Infof("font [%s] = %v", k, fr.fonts[k].Fontname)
	}
	for _, k := range sortedKeys(fr.faces) {
		face := fr.faces[k]
		tracer().Infof("face [%s] = %v, %s", k, face.Font().Fontname, face.Kind())
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

func faceKey(fname string, size int, engine raster.Engine) string {
	if size <= 0 {
		size = raster.DefaultPixelSize
	}
	return fmt.Sprintf("%s-%d-%s", fname, size, engine)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
