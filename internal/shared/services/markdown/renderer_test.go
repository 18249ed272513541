package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer(8)
	require.NoError(t, err)

	out, err := r.Render("**Backups** run daily.\nSee [docs](https://example.com).")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Backups</strong>")
	assert.Contains(t, out, "<br")
	assert.Contains(t, out, `href="https://example.com"`)
}

func TestRenderer_StripsScripts(t *testing.T) {
	r, err := NewRenderer(8)
	require.NoError(t, err)

	out, err := r.Render("hi <script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestRenderer_CachesOutput(t *testing.T) {
	r, err := NewRenderer(8)
	require.NoError(t, err)

	first, err := r.Render("# Title")
	require.NoError(t, err)
	second, err := r.Render("# Title")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, r.(*cachedRenderer).cache.Len())
}
