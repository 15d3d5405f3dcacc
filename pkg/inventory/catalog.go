package inventory

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the YAML document describing the machine's product list.
//
//	products:
//	  - id: cola
//	    name: Cola
//	    price: 1000
//	    stock: 10
//	    capacity: 10
type Catalog struct {
	Products []Product `yaml:"products"`
}

// ParseCatalog decodes a YAML catalog document and builds an inventory from
// it. Validation failures (duplicate ids, negative price or stock) are wrapped
// with ErrInvalidCatalog.
func ParseCatalog(data []byte) (*Inventory, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	if len(catalog.Products) == 0 {
		return nil, errors.Join(ErrInvalidCatalog, ErrEmptyCatalog)
	}

	inv, err := New(catalog.Products...)
	if err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	return inv, nil
}

// LoadCatalog reads a YAML catalog file from disk and builds an inventory.
func LoadCatalog(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %q: %w", path, err)
	}
	return ParseCatalog(data)
}
