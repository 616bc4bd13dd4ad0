package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads swarm config from path, applying defaults for missing values
func Load(path string) (*Swarm, error) {
	cfg := DefaultSwarm()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes swarm config to path
func Save(path string, cfg *Swarm) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}
