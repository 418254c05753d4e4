package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeText_PlainTextPassesThrough(t *testing.T) {
	got := NormalizeText("Réu: João\r\nEndereço: Rua A\r\n")
	want := "Réu: João\nEndereço: Rua A\n"
	if got != want {
		t.Errorf("NormalizeText() = %q, want %q", got, want)
	}
}

func TestNormalizeText_StripsHTML(t *testing.T) {
	raw := `<html><body>
<p>Réu: João Carlos da Silva</p>
<p>Endereço: Rua das Flores, 123</p>
<script>alert("x")</script>
</body></html>`

	got := NormalizeText(raw)
	if strings.Contains(got, "<p>") || strings.Contains(got, "<html>") {
		t.Errorf("NormalizeText() left markup behind: %q", got)
	}
	if strings.Contains(got, "alert") {
		t.Errorf("NormalizeText() kept script content: %q", got)
	}
	if !strings.Contains(got, "Réu: João Carlos da Silva") {
		t.Errorf("NormalizeText() lost visible text: %q", got)
	}
}

func TestNormalizeText_BlockElementsBecomeLines(t *testing.T) {
	raw := `<div>Réu: João Carlos da Silva</div><div>Processo: 0001234-56.2024.8.26.0001</div>`

	got := NormalizeText(raw)
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Errorf("NormalizeText() = %q, want block elements on separate lines", got)
	}
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mandado-001.txt")
	if err := os.WriteFile(path, []byte("Réu: João Carlos da Silva\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if doc.Label != "mandado-001.txt" {
		t.Errorf("Label = %q", doc.Label)
	}
	if doc.Text != "Réu: João Carlos da Silva\n" {
		t.Errorf("Text = %q", doc.Text)
	}
}

func TestLoadDocument_MissingFile(t *testing.T) {
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("LoadDocument() error = nil, want error")
	}
}
