package template_test

import (
	"os"
	"path/filepath"
	"testing"

	"logbook/internal/model"
	"logbook/internal/template"
)

func TestBuiltinTemplateLayout(t *testing.T) {
	f, err := template.BuildBuiltin()
	if err != nil {
		t.Fatalf("BuildBuiltin failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != template.StarterSheetName {
		t.Fatalf("sheets=%v, want [%s]", sheets, template.StarterSheetName)
	}

	label, err := f.GetCellValue(template.StarterSheetName, "A9")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if label != "차종" {
		t.Fatalf("A9=%q, want 차종", label)
	}

	if model.LogbookLayout.Capacity() != 250 {
		t.Fatalf("row band capacity=%d, want 250", model.LogbookLayout.Capacity())
	}
}

func TestLoaderFallsBackToBuiltin(t *testing.T) {
	loader, err := template.NewLoader("", "")
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	if loader.Source() != "내장 템플릿" {
		t.Fatalf("Source=%q, want 내장 템플릿", loader.Source())
	}

	f, err := loader.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 1 || got[0] != template.StarterSheetName {
		t.Fatalf("sheets=%v, want starter sheet only", got)
	}
}

func TestLoaderOpenReturnsIndependentWorkbooks(t *testing.T) {
	loader, err := template.NewLoader("", "")
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}

	first, err := loader.Open()
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	defer first.Close()

	// 첫 워크북을 오염시켜도 두 번째 파싱에는 보이지 않아야 한다
	if err := first.SetCellValue(template.StarterSheetName, "B15", "오염"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}

	second, err := loader.Open()
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer second.Close()

	got, err := second.GetCellValue(template.StarterSheetName, "B15")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if got != "" {
		t.Fatalf("B15=%q leaked into fresh workbook, want empty", got)
	}
}

func TestLoaderFromFile(t *testing.T) {
	raw, err := template.BuiltinBytes()
	if err != nil {
		t.Fatalf("BuiltinBytes failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "template.xlsx")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("write template file: %v", err)
	}

	loader, err := template.NewLoader(path, "")
	if err != nil {
		t.Fatalf("NewLoader(path) failed: %v", err)
	}
	if loader.Source() != path {
		t.Fatalf("Source=%q, want %q", loader.Source(), path)
	}
}

func TestLoaderMissingFileIsLoadError(t *testing.T) {
	_, err := template.NewLoader(filepath.Join(t.TempDir(), "없는파일.xlsx"), "")
	if err == nil {
		t.Fatalf("NewLoader succeeded, want LoadError")
	}
	if _, ok := err.(*template.LoadError); !ok {
		t.Fatalf("error type=%T, want *template.LoadError", err)
	}
}
