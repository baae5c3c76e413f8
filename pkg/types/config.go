// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AIConfig holds shared settings for components that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gpt-4").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. When empty the
	// pipeline runs entirely on deterministic templates.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for rate-limited or
	// transient API failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GraphConfig holds settings for topic and graph construction.
type GraphConfig struct {
	// NoteCount is the number of notes (graph nodes) to generate (default 30).
	NoteCount int `json:"note_count" yaml:"note_count"`

	// Density is the target fraction of possible connections per node,
	// clamped to [0,1] (default 0.4). It parameterizes both the edge
	// sampling probability and the soft per-node degree cap.
	Density float64 `json:"density" yaml:"density"`

	// Seed initializes the pseudo-random source used for edge sampling.
	// The same (topics, density, seed) triple always yields the same graph.
	Seed int64 `json:"seed" yaml:"seed"`
}

// VaultConfig holds settings for vault placement.
type VaultConfig struct {
	// BasePath is the directory under which vaults are created
	// (default "~/Obsidian-Vaults").
	BasePath string `json:"base_path" yaml:"base_path"`

	// VaultName is the vault directory name. When empty the generate
	// command derives it from the main topic.
	VaultName string `json:"vault_name" yaml:"vault_name"`
}

// GenerateConfig groups all settings for one vault generation run.
type GenerateConfig struct {
	AIConfig    `yaml:",inline"`
	GraphConfig `yaml:",inline"`
	VaultConfig `yaml:",inline"`

	// MainTopic is the central topic of the vault; always the first node
	// of the generated topic sequence.
	MainTopic string `json:"main_topic" yaml:"main_topic"`
}

// ClampDensity forces d into the valid [0,1] range.
func ClampDensity(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}
