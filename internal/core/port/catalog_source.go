package port

import (
	"context"

	"mesa-decision/internal/core/domain"
)

// CatalogSource is the system of record for campaigns, creatives and
// targeting rules. It is an outbound port consumed by the catalog cache.
type CatalogSource interface {
	// LoadCatalog returns every active campaign, every active creative and
	// all targeting rules as one consistent bulk read. Rules of unknown
	// kinds are already dropped; a malformed rule of a known kind is an
	// error.
	LoadCatalog(ctx context.Context) (domain.Catalog, error)
}
