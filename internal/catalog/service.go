package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gosimple/slug"

	"catalog-go/internal/model"
)

// DefaultExportName is used for export filenames when none is configured.
const DefaultExportName = "WooCommerce"

// Service is the orchestration layer over the catalog, the category
// registry and the activity log. It loads the three collections from the
// store, asks for confirmation before destructive operations, and delivers
// exports to a destination.
//
// A Service is not safe for concurrent use; every operation runs to
// completion before the next starts.
type Service struct {
	store     Store
	dest      Destination
	encryptor Encryptor
	confirmer Confirmer
	logger    Logger
	clock     Clock

	products *Products
	registry *Registry
	history  *History

	exportPrefix string
	session      *EditSession
}

// NewService loads the stored collections and returns a ready Service.
// Collections that are missing or unreadable are replaced by the defaults
// and written back. A collection the store fails to read is seeded in memory
// but left untouched in the store. Storage errors never stop startup.
// dest and encryptor may be nil when exports are not used.
func NewService(store Store, dest Destination, encryptor Encryptor, confirmer Confirmer, logger Logger, clock Clock, idgen IDGenerator) *Service {
	s := &Service{
		store:        store,
		dest:         dest,
		encryptor:    encryptor,
		confirmer:    confirmer,
		logger:       logger,
		clock:        clock,
		exportPrefix: slug.Make(DefaultExportName),
	}

	var entries []model.HistoryEntry
	historyLoad := loadCollection(store, logger, KeyHistory, &entries)
	if historyLoad != loadFound {
		entries = seedHistory(clock, idgen)
	}
	s.history = NewHistory(entries, store, clock, idgen, logger)

	var paths []string
	categoriesLoad := loadCollection(store, logger, KeyCategories, &paths)
	if categoriesLoad != loadFound {
		paths = DefaultCategories
	}
	s.registry = NewRegistry(paths, store, s.history, logger)

	var items []model.Product
	productsLoad := loadCollection(store, logger, KeyProducts, &items)
	if productsLoad != loadFound {
		items = []model.Product{sampleProduct(idgen.New())}
	}
	s.products = NewProducts(items, store, s.registry, s.history, idgen, logger)

	// Seeds are written back only over keys that held nothing usable.
	// A failed write is logged by saveCollection and does not stop startup.
	if historyLoad == loadMissing {
		_ = s.history.persist()
	}
	if categoriesLoad == loadMissing {
		_ = s.registry.persist()
	}
	if productsLoad == loadMissing {
		_ = s.products.persist()
	}

	logger.Debug("catalog loaded",
		"products", s.products.Len(),
		"categories", s.registry.Len(),
		"history", s.history.Len(),
	)
	return s
}

// SetExportName sets the name used as the export filename prefix.
// The name is slugified, so "WooCommerce" yields "woocommerce-products-<date>.csv".
func (s *Service) SetExportName(name string) {
	prefix := slug.Make(name)
	if prefix == "" {
		prefix = slug.Make(DefaultExportName)
	}
	s.exportPrefix = prefix
}

// Products returns the catalog in creation order.
func (s *Service) Products() []model.Product { return s.products.List() }

// Product returns the product with the given id.
func (s *Service) Product(id string) (model.Product, bool) { return s.products.Get(id) }

// Categories returns the sorted category registry.
func (s *Service) Categories() []string { return s.registry.List() }

// History returns the activity log, newest first.
func (s *Service) History() []model.HistoryEntry { return s.history.List() }

// Summary counts the three collections.
type Summary struct {
	Products   int
	Categories int
	History    int
}

// Status returns the current collection sizes.
func (s *Service) Status() Summary {
	return Summary{
		Products:   s.products.Len(),
		Categories: s.registry.Len(),
		History:    s.history.Len(),
	}
}

// Product operations

// AddProduct creates a product from d.
func (s *Service) AddProduct(d Draft) (*model.Product, error) {
	return s.products.Create(d)
}

// UpdateProduct replaces the product with the given id.
// An unknown id is a no-op and returns a nil product.
func (s *Service) UpdateProduct(id string, d Draft) (*model.Product, error) {
	return s.products.Update(id, d)
}

// DeleteProduct removes one product after confirmation.
// An unknown id is a no-op and returns a nil product without prompting.
func (s *Service) DeleteProduct(id string) (*model.Product, error) {
	p, ok := s.products.Get(id)
	if !ok {
		return nil, nil
	}
	if !s.confirmer.Confirm(fmt.Sprintf("Are you sure you want to delete \"%s\"?", p.Name)) {
		return nil, ErrCanceled
	}
	return s.products.Delete(id)
}

// DeleteAllProducts empties the catalog after confirmation and discards
// any edit in progress. Returns the number of products removed.
func (s *Service) DeleteAllProducts() (int, error) {
	n := s.products.Len()
	if n == 0 {
		return 0, emptyErr("products to delete")
	}
	if !s.confirmer.Confirm(fmt.Sprintf("Are you sure you want to delete ALL %d products? This action cannot be undone!", n)) {
		return 0, ErrCanceled
	}
	s.session = nil
	return s.products.DeleteAll()
}

// Edit sessions

// NewProductSession starts a session that creates a product on submit.
// Any previous session is discarded.
func (s *Service) NewProductSession() *EditSession {
	s.session = &EditSession{
		mode:         SessionCreate,
		CategoryMode: CategorySelect,
		registry:     s.registry,
	}
	return s.session
}

// StartEdit starts a session that updates p on submit. The category mode is
// select when p's category is a registry entry, freehand otherwise.
// Any previous session is discarded.
func (s *Service) StartEdit(p model.Product) *EditSession {
	mode := CategoryFreehand
	if s.registry.Contains(p.Categories) {
		mode = CategorySelect
	}
	s.session = &EditSession{
		Draft:        DraftFromProduct(p),
		CategoryMode: mode,
		mode:         SessionEditing,
		target:       p.ID,
		registry:     s.registry,
	}
	return s.session
}

// ActiveSession returns the session in progress, or nil.
func (s *Service) ActiveSession() *EditSession { return s.session }

// SubmitEdit saves the active session's draft and ends the session.
// A draft that fails validation leaves the session open.
func (s *Service) SubmitEdit() (*model.Product, error) {
	sess := s.session
	if sess == nil {
		return nil, ErrNoEditSession
	}
	if err := sess.Draft.Validate(); err != nil {
		return nil, err
	}

	var p *model.Product
	var err error
	if sess.mode == SessionEditing {
		p, err = s.products.Update(sess.target, sess.Draft)
	} else {
		p, err = s.products.Create(sess.Draft)
	}
	s.session = nil
	return p, err
}

// CancelEdit discards the active session.
func (s *Service) CancelEdit() {
	s.session = nil
}

// Category operations

// AddCategory registers path in the category registry.
func (s *Service) AddCategory(path string) (bool, error) {
	return s.registry.Add(path)
}

// ImportCategories installs the category paths listed in text.
// source names where the text came from, usually a file name.
func (s *Service) ImportCategories(text string, mode ImportMode, source string) (int, error) {
	return s.registry.ImportFromText(text, mode, source)
}

// ClearCategories empties the registry after confirmation.
// Existing products keep their category values.
func (s *Service) ClearCategories() (int, error) {
	n := s.registry.Len()
	if n == 0 {
		return 0, emptyErr("categories to clear")
	}
	if !s.confirmer.Confirm(fmt.Sprintf("Are you sure you want to clear all %d saved categories? This won't affect existing products.", n)) {
		return 0, ErrCanceled
	}
	return s.registry.Clear()
}

// ClearHistory empties the activity log after confirmation.
func (s *Service) ClearHistory() (int, error) {
	if s.history.Len() == 0 {
		return 0, emptyErr("history to clear")
	}
	if !s.confirmer.Confirm("Are you sure you want to clear the history? This action cannot be undone!") {
		return 0, ErrCanceled
	}
	return s.history.Clear()
}

// Exports

// ExportOptions controls where an export goes.
type ExportOptions struct {
	// Encrypt encrypts the file to the configured public key and adds ".age"
	// to its name.
	Encrypt bool
	// Writer, when set, receives the file instead of the destination.
	Writer io.Writer
}

// ExportResult describes a delivered export.
type ExportResult struct {
	Name  string // file name, including ".age" when encrypted
	Count int    // products or categories written
	Size  int64  // bytes delivered
}

// ExportProducts writes the catalog as a dated CSV file.
func (s *Service) ExportProducts(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	products := s.products.List()
	data, err := EncodeProductsCSV(products)
	if err != nil {
		return nil, err
	}
	for _, f := range UnsafeCSVFields(products) {
		s.logger.Warn("field contains a quote or line break and will break its CSV row",
			"id", f.ProductID, "sku", f.SKU, "field", f.Field)
	}

	name := fmt.Sprintf("%s-products-%s.csv", s.exportPrefix, s.today())
	res, err := s.deliver(ctx, name, data, opts)
	if err != nil {
		return nil, err
	}
	res.Count = len(products)
	if err := s.history.Append(ActionExported, fmt.Sprintf("%d products to CSV", len(products))); err != nil {
		return res, err
	}
	return res, nil
}

// ExportCategories writes the registry as a dated text file.
func (s *Service) ExportCategories(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	text, err := s.registry.ExportToText()
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s-categories-%s.txt", s.exportPrefix, s.today())
	res, err := s.deliver(ctx, name, []byte(text), opts)
	if err != nil {
		return nil, err
	}
	res.Count = s.registry.Len()
	if err := s.history.Append(ActionExportedCategories, fmt.Sprintf("%d categories to text file", res.Count)); err != nil {
		return res, err
	}
	return res, nil
}

// DecryptExport fetches an encrypted export from the destination and writes
// its plaintext to w.
func (s *Service) DecryptExport(ctx context.Context, name string, passphrase string, w io.Writer) error {
	if s.dest == nil {
		return fmt.Errorf("no export destination configured")
	}
	if s.encryptor == nil {
		return fmt.Errorf("no encryption configured")
	}

	var ciphertext bytes.Buffer
	if err := s.dest.Get(ctx, name, &ciphertext); err != nil {
		return fmt.Errorf("fetching %s: %w", name, err)
	}

	dc, err := s.encryptor.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking private key: %w", err)
	}
	if err := dc.Decrypt(&ciphertext, w); err != nil {
		return fmt.Errorf("decrypting %s: %w", name, err)
	}
	return nil
}

// Snapshotter is implemented by stores that can copy themselves to a file.
type Snapshotter interface {
	BackupTo(destPath string) error
}

// BackupStore copies the store to the destination as a dated snapshot.
func (s *Service) BackupStore(ctx context.Context) (*ExportResult, error) {
	snap, ok := s.store.(Snapshotter)
	if !ok {
		return nil, fmt.Errorf("store does not support snapshots")
	}
	if s.dest == nil {
		return nil, fmt.Errorf("no export destination configured")
	}

	tmpFile, err := os.CreateTemp("", "catalog-store-backup-*.db")
	if err != nil {
		return nil, fmt.Errorf("creating temp file for store backup: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := snap.BackupTo(tmpPath); err != nil {
		return nil, err
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("opening store backup: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat store backup: %w", err)
	}

	name := fmt.Sprintf("%s-store-%s.db", s.exportPrefix, s.today())
	if err := s.dest.Put(ctx, name, f, info.Size()); err != nil {
		return nil, fmt.Errorf("uploading store backup: %w", err)
	}
	s.logger.Info("store backed up", "name", name, "size", info.Size())
	return &ExportResult{Name: name, Size: info.Size()}, nil
}

// deliver optionally encrypts data and hands it to opts.Writer or the destination.
func (s *Service) deliver(ctx context.Context, name string, data []byte, opts ExportOptions) (*ExportResult, error) {
	if opts.Encrypt {
		if s.encryptor == nil || !s.encryptor.IsConfigured() {
			return nil, fmt.Errorf("encryption keys not configured (run `catalog config keys init`)")
		}
		var buf bytes.Buffer
		if err := s.encryptor.Encrypt(bytes.NewReader(data), &buf); err != nil {
			return nil, fmt.Errorf("encrypting %s: %w", name, err)
		}
		data = buf.Bytes()
		name += ".age"
	}

	if opts.Writer != nil {
		if _, err := opts.Writer.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
	} else {
		if s.dest == nil {
			return nil, fmt.Errorf("no export destination configured")
		}
		if err := s.dest.Put(ctx, name, bytes.NewReader(data), int64(len(data))); err != nil {
			return nil, fmt.Errorf("delivering %s: %w", name, err)
		}
	}

	s.logger.Info("export delivered", "name", name, "size", len(data))
	return &ExportResult{Name: name, Size: int64(len(data))}, nil
}

func (s *Service) today() string {
	return s.clock.Now().UTC().Format("2006-01-02")
}
