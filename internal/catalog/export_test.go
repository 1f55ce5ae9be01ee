package catalog

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteProductsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteProductsCSV(&buf, FallbackProducts()); err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,name,description,price,effective_price") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "45.00,40.50,10") {
		t.Fatalf("unexpected first row: %s", lines[1])
	}
}

func TestWriteServicesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteServicesCSV(&buf, FallbackServices()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := strings.Count(strings.TrimSpace(buf.String()), "\n"); got != 4 {
		t.Fatalf("expected 4 data rows, got %d", got)
	}
}
