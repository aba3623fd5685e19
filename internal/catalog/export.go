package catalog

import (
	"strings"

	"catalog-go/internal/model"
)

// productCSVHeader is the column layout expected by the WooCommerce product importer.
var productCSVHeader = []string{
	"SKU",
	"Name",
	"Description",
	"Short description",
	"Regular price",
	"Categories",
	"Tags",
	"Meta: rank_math_description",
	"Meta: rank_math_focus_keyword",
	"Meta: _yoast_wpseo_primary_product_brand",
}

// EncodeProductsCSV renders products as the importer's CSV.
//
// Text fields are wrapped in double quotes verbatim and the price is written
// bare. Quotes and newlines inside a field are not escaped, so such a field
// breaks its row; see UnsafeCSVFields.
func EncodeProductsCSV(products []model.Product) ([]byte, error) {
	if len(products) == 0 {
		return nil, emptyErr("products to export")
	}

	lines := make([]string, 0, len(products)+1)
	lines = append(lines, strings.Join(productCSVHeader, ","))
	for _, p := range products {
		lines = append(lines, strings.Join([]string{
			quote(p.SKU),
			quote(p.Name),
			quote(p.Description),
			quote(p.ShortDescription),
			p.Price,
			quote(p.Categories),
			quote(p.Tags),
			quote(p.SEODescription),
			quote(p.FocusKeyword),
			quote(p.Brand),
		}, ","))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// EncodeCategoriesText renders categories one per line.
func EncodeCategoriesText(categories []string) ([]byte, error) {
	if len(categories) == 0 {
		return nil, emptyErr("categories to export")
	}
	return []byte(strings.Join(categories, "\n")), nil
}

func quote(s string) string {
	return `"` + s + `"`
}

// UnsafeField names a product field whose content will corrupt its CSV row.
type UnsafeField struct {
	ProductID string
	SKU       string
	Field     string
}

// UnsafeCSVFields lists the text fields of products that contain a double
// quote or a line break.
func UnsafeCSVFields(products []model.Product) []UnsafeField {
	var out []UnsafeField
	for _, p := range products {
		fields := []struct{ name, value string }{
			{"sku", p.SKU},
			{"name", p.Name},
			{"description", p.Description},
			{"shortDescription", p.ShortDescription},
			{"categories", p.Categories},
			{"tags", p.Tags},
			{"seoDescription", p.SEODescription},
			{"focusKeyword", p.FocusKeyword},
			{"brand", p.Brand},
		}
		for _, f := range fields {
			if strings.ContainsAny(f.value, "\"\r\n") {
				out = append(out, UnsafeField{ProductID: p.ID, SKU: p.SKU, Field: f.name})
			}
		}
	}
	return out
}
