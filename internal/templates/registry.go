package templates

import (
	"strings"
	"sync"

	"github.com/jonathan/resume-export/internal/types"
)

// DefaultTemplateID is the theme used when a requested ID is unknown.
const DefaultTemplateID = "classic"

// Registry maps theme IDs to themes. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	themes    map[string]Theme
	order     []string
	defaultID string
}

// NewRegistry creates an empty registry whose fallback is defaultID.
func NewRegistry(defaultID string) *Registry {
	return &Registry{
		themes:    make(map[string]Theme),
		defaultID: normalizeID(defaultID),
	}
}

// Register adds a theme. IDs are case-insensitive and must be unique.
func (r *Registry) Register(t Theme) error {
	id := normalizeID(t.ID())
	if id == "" {
		return &RegistryError{Message: "theme ID is empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.themes[id]; exists {
		return &RegistryError{Message: "duplicate theme ID " + id}
	}
	r.themes[id] = t
	r.order = append(r.order, id)
	return nil
}

// Lookup returns the theme registered under id.
func (r *Registry) Lookup(id string) (Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[normalizeID(id)]
	return t, ok
}

// Resolve returns the theme for id, falling back to the default theme.
// It returns nil only when the default itself is not registered.
func (r *Registry) Resolve(id string) Theme {
	if t, ok := r.Lookup(id); ok {
		return t
	}
	t, _ := r.Lookup(r.DefaultID())
	return t
}

// ResolveStyle resolves id and generates its style for the given density.
// Nil metrics are treated as uncompressed.
func (r *Registry) ResolveStyle(id string, metrics *types.DensityMetrics) (StyleSpec, error) {
	t := r.Resolve(id)
	if t == nil {
		return StyleSpec{}, &RegistryError{Message: "default theme " + r.DefaultID() + " is not registered"}
	}

	m := types.DensityMetrics{CompressionLevel: types.CompressionNone}
	if metrics != nil {
		m = *metrics
	}
	return t.Style(m), nil
}

// DefaultID returns the fallback theme ID.
func (r *Registry) DefaultID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultID
}

// SetDefault makes a registered theme the fallback.
func (r *Registry) SetDefault(id string) error {
	id = normalizeID(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.themes[id]; !ok {
		return &RegistryError{Message: "unknown default theme " + id}
	}
	r.defaultID = id
	return nil
}

// List returns registered themes in registration order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		t := r.themes[id]
		out = append(out, Info{ID: id, Name: t.Name(), Kind: t.Kind()})
	}
	return out
}

// Builtin returns a registry holding every built-in theme.
func Builtin() (*Registry, error) {
	r := NewRegistry(DefaultTemplateID)

	for _, p := range basicPalettes() {
		t, err := NewBasicTheme(p.id, p.name, p.palette)
		if err != nil {
			return nil, err
		}
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	for _, t := range advancedThemes() {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MustBuiltin is like Builtin but panics on error.
func MustBuiltin() *Registry {
	r, err := Builtin()
	if err != nil {
		panic(err)
	}
	return r
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
