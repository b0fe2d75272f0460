package textHandling

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	page := `<!doctype html>
<html><head><title>Running cats</title>
<style>.x { color: red }</style>
<script>var dogs = "jumping";</script></head>
<body><p>The cats were <b>running</b>.</p>
<noscript>enable scripts</noscript>
<p>Ponies &amp; flies</p></body></html>`

	text, err := ExtractText(strings.NewReader(page), "text/html; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "Running cats The cats were running . Ponies & flies", text)
	assert.NotContains(t, text, "jumping")
	assert.NotContains(t, text, "enable")
}

func TestExtractTextLatin1(t *testing.T) {
	page := "<p>caf\xe9s</p>"
	text, err := ExtractText(strings.NewReader(page), "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "cafés", text)
}

func TestExtractTextEmpty(t *testing.T) {
	text, err := ExtractText(strings.NewReader(""), "")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}
