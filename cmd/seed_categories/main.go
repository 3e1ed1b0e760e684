// seed_categories genera un script SQL para poblar ppf_categories a partir de un CSV
// (una categoría por fila, primera columna). Los CSV exportados desde hojas de cálculo
// suelen venir en Windows-1252 o ISO-8859-1.
//
// Uso: go run ./cmd/seed_categories [ruta/categorias.csv] [utf-8|iso-8859-1|windows-1252]
// Por defecto lee categorias.csv en UTF-8.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_categories.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "categorias.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	encoding := "utf-8"
	if len(os.Args) > 2 {
		encoding = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	names, err := readCategories(f, encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_categories.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, csvPath, names); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d categorías\n", outPath, len(names))
}

// decoderFor envuelve r según la codificación declarada.
func decoderFor(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada: %s", encoding)
}

// readCategories devuelve los nombres únicos (primera columna), ordenados.
// Omite vacíos y una cabecera "name"/"nombre"/"categoria".
func readCategories(r io.Reader, encoding string) ([]string, error) {
	dec, err := decoderFor(r, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	seen := make(map[string]struct{})
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff"))
		if name == "" {
			continue
		}
		if line == 0 && isHeader(name) {
			continue
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func isHeader(s string) bool {
	switch strings.ToLower(s) {
	case "name", "nombre", "categoria", "categoría", "category":
		return true
	}
	return false
}

func writeSQL(w io.Writer, source string, names []string) error {
	var b strings.Builder
	b.WriteString("-- Categorías PPF iniciales\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", filepath.Base(source))
	if len(names) == 0 {
		b.WriteString("-- (sin categorías)\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO ppf_categories (name) VALUES\n")
	for i, n := range names {
		sep := ","
		if i == len(names)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s')%s\n", escapeSQL(n), sep)
	}
	b.WriteString("ON CONFLICT (name) DO NOTHING;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
