package catalog

import (
	"errors"
	"fmt"
	"slices"

	"catalog-go/internal/model"
)

// Products is the product catalog, kept in creation order.
type Products struct {
	items    []model.Product
	store    Store
	registry *Registry
	history  *History
	idgen    IDGenerator
	logger   Logger
}

// NewProducts creates a catalog holding items.
func NewProducts(items []model.Product, store Store, registry *Registry, history *History, idgen IDGenerator, logger Logger) *Products {
	if items == nil {
		items = []model.Product{}
	}
	return &Products{
		items:    items,
		store:    store,
		registry: registry,
		history:  history,
		idgen:    idgen,
		logger:   logger,
	}
}

// Create validates d, registers its category and appends a new product.
func (p *Products) Create(d Draft) (*model.Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	product := d.toProduct(p.idgen.New())
	p.items = append(p.items, product)
	p.logger.Info("product added", "id", product.ID, "sku", product.SKU)

	return &product, p.commit(product.Categories, ActionAdded, productSubject(product.Name, product.SKU))
}

// Update replaces the product with the given id, keeping its id and position.
// An unknown id is a no-op and returns a nil product.
func (p *Products) Update(id string, d Draft) (*model.Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	i := p.indexOf(id)
	if i < 0 {
		p.logger.Debug("update skipped, product not found", "id", id)
		return nil, nil
	}

	product := d.toProduct(id)
	p.items[i] = product
	p.logger.Info("product updated", "id", id, "sku", product.SKU)

	return &product, p.commit(product.Categories, ActionUpdated, productSubject(product.Name, product.SKU))
}

// Delete removes the product with the given id and returns it.
// An unknown id is a no-op and returns a nil product.
func (p *Products) Delete(id string) (*model.Product, error) {
	i := p.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	removed := p.items[i]
	p.items = slices.Delete(p.items, i, i+1)
	p.logger.Info("product deleted", "id", id, "sku", removed.SKU)

	return &removed, errors.Join(
		p.persist(),
		p.history.Append(ActionDeleted, productSubject(removed.Name, removed.SKU)),
	)
}

// DeleteAll empties the catalog and returns how many products were removed.
func (p *Products) DeleteAll() (int, error) {
	n := len(p.items)
	if n == 0 {
		return 0, emptyErr("products to delete")
	}
	p.items = []model.Product{}
	p.logger.Info("all products deleted", "count", n)

	return n, errors.Join(
		p.persist(),
		p.history.Append(ActionDeletedAll, fmt.Sprintf("%d products", n)),
	)
}

// Get returns a copy of the product with the given id.
func (p *Products) Get(id string) (model.Product, bool) {
	i := p.indexOf(id)
	if i < 0 {
		return model.Product{}, false
	}
	return p.items[i], true
}

// List returns a copy of the catalog in creation order.
func (p *Products) List() []model.Product {
	return slices.Clone(p.items)
}

// Len returns the number of products.
func (p *Products) Len() int {
	return len(p.items)
}

func (p *Products) indexOf(id string) int {
	return slices.IndexFunc(p.items, func(item model.Product) bool {
		return item.ID == id
	})
}

// commit finishes a create or update: the category is registered, the
// catalog saved and the action recorded. Every step runs even when an
// earlier save fails, so memory and history stay in step.
func (p *Products) commit(category, action, subject string) error {
	_, catErr := p.registry.Add(category)
	return errors.Join(catErr, p.persist(), p.history.Append(action, subject))
}

func (p *Products) persist() error {
	return saveCollection(p.store, p.logger, KeyProducts, p.items)
}
