package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCatalogTrimsAndDeduplicates(t *testing.T) {
	catalog, err := newCatalog(map[string][]string{
		"a": {" Okul ", "Hastane", "Okul"},
		"b": {"Hastane", "Plaj"},
	})
	if err != nil {
		t.Fatalf("newCatalog: %v", err)
	}

	all := catalog.AllValues()
	seen := make(map[string]bool)
	for _, v := range all {
		if seen[v] {
			t.Fatalf("duplicate %q in catalog universe", v)
		}
		seen[v] = true
	}
	if len(all) != 3 {
		t.Errorf("AllValues = %v, want 3 distinct values", all)
	}
	if !seen["Okul"] || seen[" Okul "] {
		t.Error("values not trimmed")
	}
}

func TestNewCatalogRejectsEmptyInput(t *testing.T) {
	if _, err := newCatalog(nil); err == nil {
		t.Error("empty catalog accepted")
	}
	if _, err := newCatalog(map[string][]string{"a": {"", "  "}}); err == nil {
		t.Error("category with only blank values accepted")
	}
	if _, err := newCatalog(map[string][]string{"": {"Okul"}}); err == nil {
		t.Error("unnamed category accepted")
	}
}

func TestCategoriesReturnsIsolatedCopies(t *testing.T) {
	catalog, err := newCatalog(map[string][]string{"a": {"Okul", "Hastane"}})
	if err != nil {
		t.Fatalf("newCatalog: %v", err)
	}

	snapshot := catalog.Categories()
	snapshot["a"][0] = "mutated"
	snapshot["b"] = []string{"injected"}

	fresh := catalog.Categories()
	if fresh["a"][0] != "Okul" {
		t.Error("mutating a snapshot leaked into the catalog")
	}
	if _, ok := fresh["b"]; ok {
		t.Error("adding to a snapshot leaked into the catalog")
	}
}

func TestAllValuesOrderIsStable(t *testing.T) {
	catalog, err := newCatalog(map[string][]string{
		"b": {"Plaj"},
		"a": {"Okul", "Hastane"},
	})
	if err != nil {
		t.Fatalf("newCatalog: %v", err)
	}

	want := []string{"Okul", "Hastane", "Plaj"}
	for i := 0; i < 10; i++ {
		got := catalog.AllValues()
		if len(got) != len(want) {
			t.Fatalf("AllValues = %v, want %v", got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("AllValues = %v, want %v", got, want)
			}
		}
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "mekanlar:\n  - Okul\n  - Hastane\nesyalar:\n  - Sandalye\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := loadCatalog(path)
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}

	categories := catalog.Categories()
	if len(categories["mekanlar"]) != 2 || len(categories["esyalar"]) != 1 {
		t.Errorf("categories = %v", categories)
	}
}

func TestLoadCatalogDefaultsWithoutPath(t *testing.T) {
	catalog, err := loadCatalog("")
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if len(catalog.Categories()) == 0 {
		t.Error("built-in catalog is empty")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := loadCatalog("/nonexistent/catalog.yaml"); err == nil {
		t.Error("missing catalog file accepted")
	}
}
