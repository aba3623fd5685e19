package catalog

// Storage keys for the three persisted collections.
const (
	KeyProducts   = "woocommerce_products"
	KeyHistory    = "woocommerce_history"
	KeyCategories = "woocommerce_categories"
)

// Store is a durable key-value store of text blobs.
// Each collection is written whole under its own key; there is no
// atomicity across keys.
type Store interface {
	// Load returns the blob stored under key.
	// ok is false when nothing has been stored under key yet.
	Load(key string) (text string, ok bool, err error)

	// Save replaces the blob stored under key.
	Save(key string, text string) error

	// Close releases any resources held by the store.
	Close() error
}
