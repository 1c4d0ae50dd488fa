// Package config loads the application configuration from the environment.
//
// # Sections
//
// Each section struct lives next to the code it configures: server, bridge,
// database, storage, assets, redis and log. Keys are declared with `mapstructure`
// tags and defaults with `default` tags, so adding a setting never touches this
// package.
//
// # Loading
//
// LoadConfig reads an optional .env file from the given directory (the --env-dir
// flag) with godotenv, which overrides the process environment. It then walks the
// Config tree by reflection, registers every default with viper, binds every key
// to SECTION_KEY (for example BRIDGE_PORT or DATABASE_DRIVER) and unmarshals.
//
// # Validation
//
// Validate rejects an unknown database driver and a bridge port equal to the
// server port. Commands fail at startup instead of at first use.
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Bridge.Addr())
package config
