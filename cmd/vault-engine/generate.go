// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vault-engine/internal/catalog"
	"github.com/pdiddy/vault-engine/internal/genai"
	"github.com/pdiddy/vault-engine/internal/vault"
	"github.com/pdiddy/vault-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an interconnected knowledge vault",
	Long: `Generate builds a complete vault for one main topic: a topic sequence,
a symmetric topic graph with the requested connection density, one Markdown
note per topic with cross-links, a README index, a Knowledge Hubs summary
of the most connected topics, and Obsidian display configuration.

Without an API key every document comes from deterministic templates, so
generation always succeeds offline.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topic", "", "main topic for the vault (required)")
	generateCmd.Flags().String("vault-name", "", "vault directory name (default: topic with spaces dashed)")
	generateCmd.Flags().Int("notes", 30, "number of notes to create")
	generateCmd.Flags().Float64("density", 0.4, "connection density in [0,1]; values outside are clamped")
	generateCmd.Flags().String("base-path", "", "base directory for vaults (default: ~/Obsidian-Vaults)")
	generateCmd.Flags().String("api-key", "", "OpenAI API key (default: .secrets/openai-api-key or OPENAI_API_KEY)")
	generateCmd.Flags().String("model", "", "AI model identifier (default: gpt-4)")
	generateCmd.Flags().Int64("seed", 0, "random seed for edge sampling (default: time-based)")
	generateCmd.Flags().Bool("no-catalog", false, "skip recording the vault in the catalog database")
	generateCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	vaultName, _ := cmd.Flags().GetString("vault-name")
	notes, _ := cmd.Flags().GetInt("notes")
	density, _ := cmd.Flags().GetFloat64("density")
	basePath, _ := cmd.Flags().GetString("base-path")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	seed, _ := cmd.Flags().GetInt64("seed")
	noCatalog, _ := cmd.Flags().GetBool("no-catalog")

	cfg := buildGenerateConfig(topic, vaultName, notes, density, basePath, apiKey, model, seed)
	return generateVault(cmd.Context(), cfg, !noCatalog)
}

// buildGenerateConfig normalizes CLI inputs into a run configuration.
func buildGenerateConfig(topic, vaultName string, notes int, density float64, basePath, apiKey, model string, seed int64) types.GenerateConfig {
	if vaultName == "" {
		vaultName = strings.ReplaceAll(topic, " ", "-")
	}
	if notes < 1 {
		notes = 30
	}
	if model == "" {
		model = viper.GetString("model")
	}
	if model == "" {
		model = genai.DefaultModel
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return types.GenerateConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     resolveAPIKey(apiKey),
			MaxRetries: viper.GetInt("max_retries"),
		},
		GraphConfig: types.GraphConfig{
			NoteCount: notes,
			Density:   types.ClampDensity(density),
			Seed:      seed,
		},
		VaultConfig: types.VaultConfig{
			BasePath:  resolveBasePath(basePath),
			VaultName: vaultName,
		},
		MainTopic: topic,
	}
}

// generateVault runs one generation and, unless disabled, records the
// result in the catalog. Catalog failures are warnings: the vault on disk
// is the source of truth.
func generateVault(ctx context.Context, cfg types.GenerateConfig, recordCatalog bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "No OpenAI API key configured; using template-based generation.")
	}

	gen := &vault.Generator{
		Backend: genai.New(cfg.AIConfig),
		Config:  cfg,
		Out:     os.Stdout,
	}

	summary, err := gen.Generate(ctx)
	if err != nil {
		return err
	}

	if recordCatalog {
		if err := recordInCatalog(ctx, cfg.BasePath, summary); err != nil {
			fmt.Fprintf(os.Stderr, "warning: catalog not updated: %v\n", err)
		}
	}

	printHubs(summary)
	fmt.Printf("\nOpen this path in Obsidian to explore the graph:\n  %s\n", summary.VaultPath)
	return nil
}

func recordInCatalog(ctx context.Context, basePath string, summary *vault.Summary) error {
	store, err := catalog.Open(basePath)
	if err != nil {
		return err
	}
	defer store.Close()

	record := catalog.VaultRecord{
		Name:      summary.VaultName,
		MainTopic: summary.MainTopic,
		Path:      summary.VaultPath,
		NoteCount: summary.NotesCreated,
		Density:   summary.Density,
		Seed:      summary.Seed,
		Model:     summary.Model,
		CreatedAt: summary.CreatedAt,
	}

	notes := make([]catalog.NoteRecord, 0, len(summary.CreatedNotes))
	for topic, filename := range summary.CreatedNotes {
		notes = append(notes, catalog.NoteRecord{
			Topic:    topic,
			NoteType: string(summary.NoteTypes[topic]),
			Degree:   summary.Graph.Degree(topic),
			Filename: filename,
		})
	}

	return store.Record(ctx, record, notes)
}

// printHubs lists the top connected topics from the run.
func printHubs(summary *vault.Summary) {
	fmt.Println("\nTop knowledge hubs:")
	for i, hub := range summary.Hubs {
		if i >= 5 {
			break
		}
		fmt.Printf("  %-40s  %d connections\n", hub.Topic, hub.Degree)
	}
}
