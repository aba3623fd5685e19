package catalog

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"catalog-go/internal/model"
)

var validate = newValidator()

// newValidator reports field errors by their form label rather than the Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// Draft is the in-progress form state for one product.
// Every field may be empty while editing; SKU, Name and Price must be set
// before the draft is saved.
type Draft struct {
	SKU              string `label:"SKU" validate:"required"`
	Name             string `label:"Name" validate:"required"`
	Description      string `label:"Description"`
	ShortDescription string `label:"Short description"`
	Price            string `label:"Price" validate:"required"`
	Categories       string `label:"Category"`
	Tags             string `label:"Tags"`
	Brand            string `label:"Brand"`
	SEODescription   string `label:"SEO description"`
	FocusKeyword     string `label:"Focus keyword"`
}

// DraftFromProduct copies a stored product into a draft.
func DraftFromProduct(p model.Product) Draft {
	return Draft{
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		Categories:       p.Categories,
		Tags:             p.Tags,
		Brand:            p.Brand,
		SEODescription:   p.SEODescription,
		FocusKeyword:     p.FocusKeyword,
	}
}

// Validate returns a *ValidationError naming every missing required field.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating draft: %w", err)
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
	}
	return verr
}

func (d Draft) toProduct(id string) model.Product {
	return model.Product{
		ID:               id,
		SKU:              d.SKU,
		Name:             d.Name,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Price:            d.Price,
		Categories:       d.Categories,
		Tags:             d.Tags,
		Brand:            d.Brand,
		SEODescription:   d.SEODescription,
		FocusKeyword:     d.FocusKeyword,
	}
}

// SessionMode says whether an edit session creates or updates a product.
type SessionMode int

const (
	SessionCreate SessionMode = iota
	SessionEditing
)

func (m SessionMode) String() string {
	if m == SessionEditing {
		return "editing"
	}
	return "create"
}

// CategoryMode says how the draft's category was chosen.
type CategoryMode int

const (
	// CategorySelect means the category is one of the registry entries.
	CategorySelect CategoryMode = iota
	// CategoryFreehand means the category was typed in and may be new.
	CategoryFreehand
)

func (m CategoryMode) String() string {
	if m == CategoryFreehand {
		return "freehand"
	}
	return "select"
}

// EditSession holds a Draft together with what it will be saved as.
type EditSession struct {
	Draft        Draft
	CategoryMode CategoryMode

	mode     SessionMode
	target   string // product ID when mode is SessionEditing
	registry *Registry
}

// Mode returns whether the session creates or updates.
func (s *EditSession) Mode() SessionMode { return s.mode }

// Target returns the ID of the product being edited, or "" when creating.
func (s *EditSession) Target() string { return s.target }

// SelectCategory sets the draft's category to an existing registry entry.
func (s *EditSession) SelectCategory(path string) error {
	if !s.registry.Contains(path) {
		return fmt.Errorf("category not in registry: %q", path)
	}
	s.Draft.Categories = path
	s.CategoryMode = CategorySelect
	return nil
}

// EnterCategory sets the draft's category to free text. A new category is
// registered when the draft is submitted.
func (s *EditSession) EnterCategory(text string) {
	s.Draft.Categories = text
	s.CategoryMode = CategoryFreehand
}
