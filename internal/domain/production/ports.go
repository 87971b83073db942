package production

import "context"

// CatalogSource loads a fully formed catalog before any chain is resolved.
// Implementations live in the adapters layer (YAML files, database, embedded demo data).
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
}

// CatalogStore persists a catalog so that a CatalogSource can load it later
type CatalogStore interface {
	SaveCatalog(ctx context.Context, catalog *Catalog) error
}
