package catalog

import (
	"catalog-go/internal/model"
)

// DefaultCategories is installed when no category registry is stored.
var DefaultCategories = []string{
	"Clothing > T-Shirts",
	"Clothing > Shirts",
	"Clothing > Pants",
	"Electronics > Phones",
	"Electronics > Laptops",
	"Home & Garden > Furniture",
	"Home & Garden > Plants",
	"Sports > Fitness",
	"Sports > Yoga",
	"Books > Technology",
	"Books > Fiction",
	"Food & Beverage > Coffee",
	"Food & Beverage > Tea",
	"Accessories > Wallets",
	"Accessories > Bags",
}

// sampleProduct is installed when no catalog is stored.
func sampleProduct(id string) model.Product {
	return model.Product{
		ID:               id,
		SKU:              "TEE-001",
		Name:             "Classic Cotton T-Shirt",
		Description:      "Made from 100% premium cotton, this classic t-shirt offers superior comfort and durability. Available in multiple colors and sizes.",
		ShortDescription: "Comfortable cotton t-shirt perfect for everyday wear",
		Price:            "19.99",
		Categories:       "Clothing > T-Shirts",
		Tags:             "cotton,casual,comfort,everyday",
		Brand:            "ComfortWear",
		SEODescription:   "Buy premium cotton t-shirts online. Super comfortable, durable, and available in multiple sizes.",
		FocusKeyword:     "cotton t-shirt",
	}
}

// seedHistory is installed when no history is stored. It records the
// sample product being added.
func seedHistory(clock Clock, idgen IDGenerator) []model.HistoryEntry {
	p := sampleProduct("")
	return []model.HistoryEntry{{
		ID:        idgen.New(),
		Action:    ActionAdded,
		Product:   productSubject(p.Name, p.SKU),
		Timestamp: clock.Now(),
	}}
}
