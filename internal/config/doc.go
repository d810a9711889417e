// Package config provides loading and environment overlay for minthook
// configuration. It exposes a Default() baseline, Load() for JSON or YAML
// files, and FromEnv() to overlay MINTHOOK_* environment variables.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/minthook.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
