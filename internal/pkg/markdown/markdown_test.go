//go:build unit
// +build unit

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render("## Themes\n\n- **Memory**\n- Loss")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h2>Themes</h2>")
	assert.Contains(t, html, "<strong>Memory</strong>")
	assert.Contains(t, html, "<li>Loss</li>")
}

func TestRender_DropsRawHTML(t *testing.T) {
	out, err := Render("<script>alert(1)</script>")
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>")
}

func TestRender_Empty(t *testing.T) {
	out, err := Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
