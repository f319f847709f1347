package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// The stock catalog, used when no --catalog file is supplied. Rooms only
// ever see copies of these, never the maps themselves.
var defaultCategories = map[string][]string{
	"Ünlüler": {
		"Mustafa Kemal Atatürk", "Barış Manço", "Kemal Sunal", "Sezen Aksu", "Tarkan",
		"Müslüm Gürses", "Cem Yılmaz", "Şener Şen", "Adile Naşit", "Haluk Bilginer",
		"Fatih Terim", "Fernando Muslera", "Alex de Souza", "Gheorghe Hagi", "Cristiano Ronaldo",
		"Lionel Messi", "Acun Ilıcalı", "Kıvanç Tatlıtuğ", "Kenan İmirzalıoğlu", "Beren Saat",
		"Serenay Sarıkaya", "Zeki Müren", "Aşık Veysel", "Neşet Ertaş", "Cüneyt Arkın",
		"Türkan Şoray", "Fatma Girik", "Filiz Akın", "Hülya Koçyiğit", "Lefter Küçükandonyadis",
		"Metin Oktay", "İlber Ortaylı", "Celal Şengör", "Hadise", "Murat Boz",
	},
	"Mekanlar": {
		"Okul", "Hastane", "Havalimanı", "Plaj", "Sinema",
		"Müze", "Restoran", "Kütüphane", "Stadyum", "Pazar",
	},
}

// Catalog is the immutable, process-wide set of candidate secrets, keyed by
// category name. It is built once at startup and shared by every room.
type Catalog struct {
	categories map[string][]string
}

// newCatalog builds a catalog from the given categories, trimming values and
// dropping duplicates across the whole set (first occurrence wins).
func newCatalog(categories map[string][]string) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("catalog has no categories")
	}

	seen := make(map[string]bool)
	cleaned := make(map[string][]string, len(categories))

	for name, values := range categories {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("catalog contains an unnamed category")
		}

		kept := make([]string, 0, len(values))
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			kept = append(kept, v)
		}
		if len(kept) == 0 {
			return nil, fmt.Errorf("catalog category %q is empty", name)
		}
		cleaned[name] = kept
	}

	return &Catalog{categories: cleaned}, nil
}

// loadCatalog reads category lists from a YAML or JSON file, falling back to
// the stock catalog when path is empty.
func loadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return newCatalog(defaultCategories)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var categories map[string][]string
	if err := v.Unmarshal(&categories); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	return newCatalog(categories)
}

// Categories returns a deep copy suitable for handing to a room.
func (c *Catalog) Categories() map[string][]string {
	out := make(map[string][]string, len(c.categories))
	for name, values := range c.categories {
		out[name] = append([]string(nil), values...)
	}
	return out
}

// AllValues returns every candidate in the catalog, ordered by category name
// and then by position within the category.
func (c *Catalog) AllValues() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []string
	for _, name := range names {
		all = append(all, c.categories[name]...)
	}
	return all
}
