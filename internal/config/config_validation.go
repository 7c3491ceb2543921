package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the server depends on at startup.
//
// The catalog API key is deliberately not required: without it searches
// degrade to empty result sets, which is a valid (if unhelpful) deployment.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.SessionTTL <= 0 || cfg.App.ResetTokenTTL <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Catalog.BaseURL == "" || cfg.Catalog.Timeout <= 0 {
		return ErrInvalidCatalogConfigs
	}

	return nil
}
