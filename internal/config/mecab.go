package config

import (
	"os"

	"github.com/spf13/viper"
)

// MeCabConfig holds the morphological analyzer settings.
type MeCabConfig struct {
	Binary string
	DicDir string
}

// LoadMeCabConfig loads analyzer configuration. Precedence:
// 1. Viper configuration (config file or KIFUKU_ env vars)
// 2. Direct environment variables (MECAB_*)
// 3. Defaults (mecab on PATH, dictionary from mecabrc)
func LoadMeCabConfig() MeCabConfig {
	cfg := MeCabConfig{Binary: "mecab"}

	if v := viper.GetString("mecab.binary"); v != "" {
		cfg.Binary = ExpandPath(v)
	}
	if v := viper.GetString("mecab.dicdir"); v != "" {
		cfg.DicDir = ExpandPath(v)
	}

	if cfg.DicDir == "" {
		if v := os.Getenv("MECAB_DICDIR"); v != "" {
			cfg.DicDir = ExpandPath(v)
		}
	}

	return cfg
}
