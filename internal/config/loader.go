package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSki loads ski tuning.
// Search order: customPath -> ~/.badski/configs/ski.yaml -> ./configs/ski.yaml -> embedded default
func LoadSki(customPath string) (SkiConfig, error) {
	cfg := DefaultSkiConfig()
	found, err := load("ski.yaml", customPath, defaultSkiYAML, &cfg)
	if err != nil {
		return cfg, err
	}
	if !found {
		return DefaultSkiConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadCatalog loads the item catalog.
// Search order: customPath -> ~/.badski/configs/items.yaml -> ./configs/items.yaml -> embedded default
func LoadCatalog(customPath string) (Catalog, error) {
	var cat Catalog
	found, err := load("items.yaml", customPath, defaultItemsYAML, &cat)
	if err != nil {
		return cat, err
	}
	if !found {
		return DefaultCatalog(), nil
	}
	return cat, nil
}

// LoadScenarios loads mission themes.
// Search order: customPath -> ~/.badski/configs/scenarios.yaml -> ./configs/scenarios.yaml -> embedded default
func LoadScenarios(customPath string) (Scenarios, error) {
	var sc Scenarios
	found, err := load("scenarios.yaml", customPath, defaultScenariosYAML, &sc)
	if err != nil {
		return sc, err
	}
	if !found || len(sc.Themes) == 0 {
		return DefaultScenarios(), nil
	}
	return sc, nil
}

// source is one place a config file may come from.
type source struct {
	name string
	read func() ([]byte, error)
}

// sources lists the places filename is looked up, most specific first.
func sources(filename string, embedded []byte) []source {
	var out []source
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".badski", "configs", filename)
		out = append(out, source{p, func() ([]byte, error) { return os.ReadFile(p) }})
	}
	local := filepath.Join("configs", filename)
	out = append(out,
		source{local, func() ([]byte, error) { return os.ReadFile(local) }},
		source{"embedded " + filename, func() ([]byte, error) { return embedded, nil }},
	)
	return out
}

// decodeInto unmarshals data over a copy of *out and stores it only on
// success, so a broken file never leaves half-applied values behind.
func decodeInto[T any](data []byte, out *T) error {
	v := *out
	if err := yaml.Unmarshal(data, &v); err != nil {
		return err
	}
	*out = v
	return nil
}

// load decodes the first usable source into out. An explicit customPath
// must be readable and valid; the fallbacks are skipped silently when
// missing or broken. It reports false when nothing decoded.
func load[T any](filename, customPath string, embedded []byte, out *T) (bool, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return false, fmt.Errorf("read config %s: %w", customPath, err)
		}
		if err := decodeInto(data, out); err != nil {
			return false, fmt.Errorf("parse config %s: %w", customPath, err)
		}
		return true, nil
	}

	for _, src := range sources(filename, embedded) {
		data, err := src.read()
		if err != nil {
			continue
		}
		if decodeInto(data, out) == nil {
			return true, nil
		}
	}
	return false, nil
}
