package store

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the paths and layout knobs shared by the CLI and TUI.
type Config struct {
	LibraryDir string
	CacheDir   string
	PageSize   int
	RowHeight  int
	Gap        int
}

// LoadConfig reads the .foto config file (current directory or home),
// applying FOTO_* environment overrides on top of the defaults.
func LoadConfig() (*Config, error) {
	viper.SetDefault("library", "~/Pictures")
	viper.SetDefault("cache", "~/.foto.db")
	viper.SetDefault("pageSize", 12)
	viper.SetDefault("rowHeight", 200)
	viper.SetDefault("gap", 6)

	viper.SetConfigName(".foto") // .yaml is implicit
	viper.SetEnvPrefix("FOTO")
	viper.AutomaticEnv()

	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	library, err := homedir.Expand(viper.GetString("library"))
	if err != nil {
		return nil, fmt.Errorf("store: expand library path: %w", err)
	}
	cache, err := homedir.Expand(viper.GetString("cache"))
	if err != nil {
		return nil, fmt.Errorf("store: expand cache path: %w", err)
	}

	return &Config{
		LibraryDir: library,
		CacheDir:   cache,
		PageSize:   viper.GetInt("pageSize"),
		RowHeight:  viper.GetInt("rowHeight"),
		Gap:        viper.GetInt("gap"),
	}, nil
}
