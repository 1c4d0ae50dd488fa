// Package assets imports display metadata for items and mods.
//
// The catalog is a single JSON object in the storage bucket (storage.bucket /
// assets.catalog_object) holding pre-extracted names. An import replaces the
// item_assets and mod_assets tables in one transaction and then rebuilds the search
// index so new display names become searchable.
//
// # HTTP Endpoints
//
//   - GET  /assets/status : Reports whether the bucket and catalog object exist.
//   - POST /assets/import : Runs the import.
package assets
