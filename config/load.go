package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// LoadUCTConfig reads and strictly decodes a uctOptions.json file: unknown
// keys are rejected rather than silently ignored.
func LoadUCTConfig(path string) (UCTConfig, error) {
	cfg := DefaultUCTConfig()
	if err := decodeStrict(path, &cfg); err != nil {
		return UCTConfig{}, err
	}
	if !cfg.IsValid() {
		return UCTConfig{}, errors.Errorf("config: %s: invalid uct config %+v", path, cfg)
	}
	return cfg, nil
}

// LoadWorkerConfig reads and strictly decodes a selfPlayOptions.json file.
func LoadWorkerConfig(path string) (WorkerConfig, error) {
	var cfg WorkerConfig
	if err := decodeStrict(path, &cfg); err != nil {
		return WorkerConfig{}, err
	}
	if !cfg.IsValid() {
		return WorkerConfig{}, errors.Errorf("config: %s: invalid worker config %+v", path, cfg)
	}
	return cfg, nil
}

func decodeStrict(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "config: opening %s", path)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrapf(err, "config: decoding %s", path)
	}
	return nil
}
