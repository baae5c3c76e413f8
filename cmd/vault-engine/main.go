// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vault-engine CLI.
// See docs/ARCHITECTURE.md § CLI Surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vault-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// defaultBasePath is where vaults land when no base path is configured.
const defaultBasePath = "~/Obsidian-Vaults"

// rootCmd is the base command for the vault-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "vault-engine",
	Short: "Generate interconnected Obsidian knowledge vaults",
	Long: `vault-engine builds synthetic knowledge vaults: it derives a set of topics
from one main topic, links them into a symmetric graph with controllable
connection density, and renders each topic as a Markdown note with
wiki-style cross-links.

Notes are written as plain files that Obsidian (or any Markdown tool) can
open directly. With an OpenAI API key the topic list and note prose are
AI-generated; without one, deterministic templates produce an equivalent
structured vault.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./vault-engine.yaml or ~/.config/vault-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vault-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vault-engine"))
		}
	}

	viper.SetEnvPrefix("VAULT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveBasePath picks the vault base directory from a flag, the config
// file, or the default, expanding a leading "~".
func resolveBasePath(flagValue string) string {
	path := flagValue
	if path == "" {
		path = viper.GetString("base_path")
	}
	if path == "" {
		path = defaultBasePath
	}
	return expandUser(path)
}

// expandUser replaces a leading "~" with the current user's home directory.
func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// resolveAPIKey picks the OpenAI API key: explicit flag, then .secrets/,
// then the environment.
func resolveAPIKey(flagValue string) string {
	return secrets.Resolve(loadedSecrets, "openai-api-key", "OPENAI_API_KEY", flagValue)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
