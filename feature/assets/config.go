package assets

// Config holds configuration for the asset catalog import.
type Config struct {
	// CatalogObject is the object key of the catalog JSON inside the storage bucket.
	CatalogObject string `mapstructure:"catalog_object" default:"catalog/assets.json"`
}
