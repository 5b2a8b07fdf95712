package catalog

import (
	"sort"

	"github.com/aescanero/dago-spec/pkg/spec"
)

// DefaultHighPriceThreshold is the minimum price of a high-price product
const DefaultHighPriceThreshold = 200_000

// Registered specification names
const (
	SpecNew                  = "is-new"
	SpecHighPrice            = "is-high-price"
	SpecOriginalAndHighPrice = "is-original-and-high-price"
)

// IsNew is satisfied by newly added products
func IsNew() spec.Specification[Product] {
	return spec.Named(SpecNew, func(p Product) bool {
		return p.IsNew
	})
}

// IsHighPrice is satisfied by products priced at or above threshold
func IsHighPrice(threshold int) spec.Specification[Product] {
	return spec.Named(SpecHighPrice, func(p Product) bool {
		return p.Price >= threshold
	})
}

// HasColor is satisfied by products of the given color
func HasColor(color string) spec.Specification[Product] {
	return spec.Named("has-color-"+color, func(p Product) bool {
		return p.Color == color
	})
}

// IsOriginalAndHighPrice is satisfied by existing (not new) products priced
// at or above threshold
func IsOriginalAndHighPrice(threshold int) spec.Specification[Product] {
	return IsNew().Not().And(IsHighPrice(threshold))
}

// Specs returns the registered product specifications by name
func Specs(threshold int) map[string]spec.Specification[Product] {
	return map[string]spec.Specification[Product]{
		SpecNew:                  IsNew(),
		SpecHighPrice:            IsHighPrice(threshold),
		SpecOriginalAndHighPrice: IsOriginalAndHighPrice(threshold),
	}
}

// SpecNames returns the registered names in sorted order
func SpecNames(specs map[string]spec.Specification[Product]) []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
