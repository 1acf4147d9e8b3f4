package topics

const (
	// Catálogo
	CatalogChanges = "catalog_changes"

	// Pub/sub (Redis)
	CatalogStatusBroadcast = "catalog_status_broadcast"
)
