package model

import "time"

// Product is a single catalog record.
// JSON names match the stored blob layout so existing data loads unchanged.
type Product struct {
	ID               string `json:"id"`               // UUID, immutable after creation
	SKU              string `json:"sku"`              // required, not unique
	Name             string `json:"name"`             // required
	Description      string `json:"description"`
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"`            // decimal string, required
	Categories       string `json:"categories"`       // single path, e.g. "Clothing > T-Shirts"
	Tags             string `json:"tags"`             // comma-separated
	Brand            string `json:"brand"`
	SEODescription   string `json:"seoDescription"`   // soft cap of 160 characters, not enforced
	FocusKeyword     string `json:"focusKeyword"`
}

// HistoryEntry is one line of the activity log.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Product   string    `json:"product"` // subject, usually "name (sku)" or a count summary
	Timestamp time.Time `json:"timestamp"`
}
