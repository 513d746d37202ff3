package templates

import (
	"sync"
	"testing"

	"github.com/jonathan/resume-export/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_RegistersAllThemes(t *testing.T) {
	r, err := Builtin()
	require.NoError(t, err)

	infos := r.List()
	require.Len(t, infos, 15)

	basic, advanced := 0, 0
	for _, info := range infos {
		switch info.Kind {
		case KindBasic:
			basic++
		case KindAdvanced:
			advanced++
		}
	}
	assert.Equal(t, 12, basic)
	assert.Equal(t, 3, advanced)
	assert.Equal(t, DefaultTemplateID, infos[0].ID)
}

func TestRegistry_ResolveUnknownFallsBackToDefault(t *testing.T) {
	r := MustBuiltin()

	style, err := r.ResolveStyle("does-not-exist", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplateID, style.TemplateID)
	assert.Equal(t, KindBasic, style.Kind)
}

func TestRegistry_LookupIsCaseInsensitive(t *testing.T) {
	r := MustBuiltin()

	theme, ok := r.Lookup("  Modern ")
	require.True(t, ok)
	assert.Equal(t, "modern", theme.ID())
}

func TestRegistry_RegisterRejectsDuplicateAndEmpty(t *testing.T) {
	r := NewRegistry("a")
	theme, err := NewBasicTheme("a", "A", basicPalettes()[0].palette)
	require.NoError(t, err)

	require.NoError(t, r.Register(theme))

	err = r.Register(theme)
	var regErr *RegistryError
	require.ErrorAs(t, err, &regErr)
	assert.Contains(t, regErr.Message, "duplicate")

	empty, err := NewBasicTheme(" ", "Empty", basicPalettes()[0].palette)
	require.NoError(t, err)
	assert.Error(t, r.Register(empty))
}

func TestRegistry_ResolveStyleWithoutDefault(t *testing.T) {
	r := NewRegistry("missing")

	_, err := r.ResolveStyle("anything", nil)

	var regErr *RegistryError
	assert.ErrorAs(t, err, &regErr)
}

func TestRegistry_NewThemeNeedsNoDispatchChange(t *testing.T) {
	r := MustBuiltin()
	custom := &AdvancedTheme{id: "custom", name: "Custom", layout: LayoutIconic, css: "body{}"}

	require.NoError(t, r.Register(custom))

	style, err := r.ResolveStyle("custom", nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", style.TemplateID)
	assert.Equal(t, "body{}", style.CSS)
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	r := MustBuiltin()
	metrics := &types.DensityMetrics{CompressionLevel: types.CompressionHeavy}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			style, err := r.ResolveStyle("modern", metrics)
			assert.NoError(t, err)
			assert.Equal(t, Tight, style.Spacing)
		}()
	}
	wg.Wait()
}

func TestRegistry_SetDefault(t *testing.T) {
	r := MustBuiltin()

	require.NoError(t, r.SetDefault(" Modern "))
	assert.Equal(t, "modern", r.DefaultID())
	assert.Equal(t, "modern", r.Resolve("no-such-theme").ID())

	err := r.SetDefault("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown default theme")
	assert.Equal(t, "modern", r.DefaultID())
}
