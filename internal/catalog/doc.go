// Package catalog defines the Product candidate and the product specifications
// built on top of it.
//
// Example usage:
//
//	specs := catalog.Specs(catalog.DefaultHighPriceThreshold)
//	products, err := catalog.LoadFile("products.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched := spec.Filter(products, specs[catalog.SpecOriginalAndHighPrice])
//
// Catalog files are YAML lists:
//
//	- name: 파이리
//	  is_new: false
//	  price: 200000
//	  color: white
package catalog
