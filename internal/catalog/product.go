package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Product is a catalog entry evaluated by product specifications
type Product struct {
	Name  string `json:"name" yaml:"name"`
	IsNew bool   `json:"is_new" yaml:"is_new"`
	Price int    `json:"price" yaml:"price"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Sample returns the reference product set
func Sample() []Product {
	return []Product{
		{Name: "피카츄", IsNew: true, Price: 100_000, Color: "black"},
		{Name: "라이츄", IsNew: false, Price: 150_000, Color: "red"},
		{Name: "파이리", IsNew: false, Price: 200_000, Color: "white"},
		{Name: "꼬북이", IsNew: true, Price: 250_000, Color: "black"},
	}
}

// Names returns the product names in order
func Names(products []Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

// Decode reads a YAML list of products
func Decode(r io.Reader) ([]Product, error) {
	var products []Product
	if err := yaml.NewDecoder(r).Decode(&products); err != nil {
		if errors.Is(err, io.EOF) {
			return []Product{}, nil
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	for i, p := range products {
		if p.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q: price must be non-negative", p.Name)
		}
	}

	return products, nil
}

// LoadFile reads a YAML catalog file
func LoadFile(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
