package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the few tunable values the core reads.
type Config struct {
	PetName string
	// PetNameSet reports whether the config file names the pet explicitly,
	// as opposed to the built-in default.
	PetNameSet           bool
	Notifications        bool
	AutoSync             bool
	DecayIntervalMinutes int
}

// Load reads config.yaml from ~/.codepaw or the working directory. A missing
// file just means defaults.
func Load() Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".codepaw"))
	}
	v.AddConfigPath(".")

	v.SetDefault("pet.name", "Pypy")
	v.SetDefault("pet.notifications", true)
	v.SetDefault("sync.auto", false)
	v.SetDefault("decay.interval_minutes", 5)

	_ = v.ReadInConfig()

	return Config{
		PetName:              v.GetString("pet.name"),
		PetNameSet:           v.InConfig("pet.name"),
		Notifications:        v.GetBool("pet.notifications"),
		AutoSync:             v.GetBool("sync.auto"),
		DecayIntervalMinutes: v.GetInt("decay.interval_minutes"),
	}
}
