// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/vault-engine/pkg/types"
)

// manifestFile is the per-vault record of how the vault was generated.
const manifestFile = "vault.yaml"

// Manifest records the parameters and outcome of one generation run. It
// lives at the vault root and is what the catalog reads back when
// re-indexing existing vaults.
type Manifest struct {
	VaultName string    `yaml:"vault_name"`
	MainTopic string    `yaml:"main_topic"`
	NoteCount int       `yaml:"note_count"`
	Density   float64   `yaml:"density"`
	Seed      int64     `yaml:"seed"`
	Model     string    `yaml:"model"`
	CreatedAt time.Time `yaml:"created_at"`

	// Hubs is the full degree ranking at generation time.
	Hubs []types.HubEntry `yaml:"hubs"`
}

// WriteManifest marshals m to <vaultPath>/vault.yaml.
func WriteManifest(vaultPath string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(vaultPath, manifestFile), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest loads <vaultPath>/vault.yaml.
func ReadManifest(vaultPath string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(vaultPath, manifestFile))
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	return m, nil
}
