// Package loader mounts feature route groups on the operator API.
//
// # Features
//
// Every feature package (inventory, search, chat, bridge, assets) exposes a
// Feature value: a unique Name, an IsEnabled check and a Load function that
// registers its routes on a fiber.Router. Features whose dependencies are not
// configured, such as assets without object storage, report themselves disabled.
//
// # Manager
//
// The start command registers every feature on a Manager and calls LoadAll once.
// Disabled features are skipped, a duplicate name is an error, and LoadAll
// returns the loaded names so startup can log them.
//
//	m := loader.NewManager()
//	m.Register(inventory.NewFeature(invService))
//	loaded, err := m.LoadAll(app)
package loader
