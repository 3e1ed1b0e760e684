package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCategories_Latin1(t *testing.T) {
	// "Películas mate" en ISO-8859-1: í = 0xED
	raw := []byte("nombre\nPel\xedculas mate\nGarware Matt\n\nGarware Matt\n")
	names, err := readCategories(bytes.NewReader(raw), "iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Garware Matt", "Películas mate"}, names)
}

func TestReadCategories_UTF8ConBOM(t *testing.T) {
	names, err := readCategories(strings.NewReader("\ufeffXpel Ultimate,extra\nO'Neil Gloss\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"O'Neil Gloss", "Xpel Ultimate"}, names)
}

func TestReadCategories_CodificacionDesconocida(t *testing.T) {
	_, err := readCategories(strings.NewReader("x"), "ebcdic")
	assert.Error(t, err)
}

func TestWriteSQL_EscapaComillas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, "cats.csv", []string{"A", "O'Neil Gloss"}))
	sql := buf.String()
	assert.Contains(t, sql, "('A'),\n")
	assert.Contains(t, sql, "('O''Neil Gloss')\n")
	assert.Contains(t, sql, "ON CONFLICT (name) DO NOTHING;")
}
