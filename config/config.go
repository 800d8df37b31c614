// Package config loads run_config.json, the small JSON document that
// tells the nummus driver how many organizations and transactions to
// simulate. It is found by walking up from the working directory to
// the module root, marked by go.mod.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConfig wraps every failure this package can produce: a missing
// module root, a missing or malformed run_config.json.
var ErrConfig = errors.New("nummus: config")

// RunConfig controls the size of a simulated run: how many
// organizations participate, how many transactions flow through the
// network, and how many addresses each organization controls.
type RunConfig struct {
	OrgCount                 uint `json:"org_count"`
	TransactionCount         uint `json:"transaction_count"`
	AddressesPerOrganization uint `json:"addresses_per_organization"`
}

// Load walks up from the current working directory to find the
// module root (marked by go.mod), then decodes run_config.json from
// that directory.
func Load() (*RunConfig, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(root, "run_config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}

	var cfg RunConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfig, path, err)
	}
	if cfg.OrgCount == 0 || cfg.TransactionCount == 0 || cfg.AddressesPerOrganization == 0 {
		return nil, fmt.Errorf("%w: org_count, transaction_count and addresses_per_organization must all be set", ErrConfig)
	}
	return &cfg, nil
}

// projectRoot walks up from the working directory looking for the
// directory containing go.mod.
func projectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfig, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no go.mod found above %s", ErrConfig, dir)
		}
		dir = parent
	}
}
