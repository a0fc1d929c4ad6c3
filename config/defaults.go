package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.dir", "export")
	v.SetDefault("output.dir", "output")
	v.SetDefault("database.path", "simmer.db")

	v.SetDefault("pipeline.collections", []string{"recipes", "interactions"})
	// "exported_at" is stamped by the export collaborator on every scan;
	// hashing it would mark every document Updated on every run
	v.SetDefault("pipeline.fingerprint_ignore_fields", []string{"exported_at"})
	v.SetDefault("pipeline.sample_cap", 5)

	v.SetDefault("log.json", false)
}
