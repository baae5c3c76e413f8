// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vault-engine/internal/catalog"
	"github.com/pdiddy/vault-engine/internal/content"
	"github.com/pdiddy/vault-engine/internal/vault"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the catalog of generated vaults",
	Long: `Catalog queries the SQLite registry that generate maintains alongside the
vaults. Use list for an overview of past runs and show for the per-note
detail of one vault, ordered by connectivity.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated vaults, most recent first",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	vaults, err := store.List(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(vaults)
	}

	if len(vaults) == 0 {
		fmt.Println("No vaults cataloged yet.")
		return nil
	}

	fmt.Printf("%-24s  %-24s  %-6s  %-8s  %-10s  %s\n",
		"Vault", "Main Topic", "Notes", "Density", "Model", "Created")
	fmt.Println(strings.Repeat("-", 96))
	for _, v := range vaults {
		fmt.Printf("%-24s  %-24s  %-6d  %-8.2f  %-10s  %s\n",
			truncate(v.Name, 24), truncate(v.MainTopic, 24), v.NoteCount,
			v.Density, truncate(v.Model, 10), v.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\n%d vault(s)\n", len(vaults))
	return nil
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show [vault]",
	Short: "Show one vault's notes ordered by connectivity",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	vaultRec, notes, err := store.Show(context.Background(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Vault catalog.VaultRecord  `json:"vault"`
			Notes []catalog.NoteRecord `json:"notes"`
		}{vaultRec, notes})
	}

	fmt.Printf("Vault:      %s\n", vaultRec.Name)
	fmt.Printf("Main topic: %s\n", vaultRec.MainTopic)
	fmt.Printf("Path:       %s\n", vaultRec.Path)
	fmt.Printf("Notes: %d   Density: %.2f   Seed: %d   Model: %s\n\n",
		vaultRec.NoteCount, vaultRec.Density, vaultRec.Seed, vaultRec.Model)

	fmt.Printf("%-40s  %-10s  %s\n", "Topic", "Type", "Connections")
	fmt.Println(strings.Repeat("-", 64))
	for _, n := range notes {
		fmt.Printf("%-40s  %-10s  %d\n", truncate(n.Topic, 40), n.NoteType, n.Degree)
	}
	return nil
}

// --- sync subcommand ---

var catalogSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-index existing vaults from their manifests",
	Long: `Sync scans the base path for vault directories carrying a vault.yaml
manifest and records each one in the catalog. Use it after moving vaults
between machines or deleting the catalog database.`,
	RunE: runCatalogSync,
}

func runCatalogSync(cmd *cobra.Command, args []string) error {
	basePath, _ := cmd.Flags().GetString("base-path")
	basePath = resolveBasePath(basePath)

	store, err := catalog.Open(basePath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return fmt.Errorf("reading base path: %w", err)
	}

	synced := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		vaultPath := filepath.Join(basePath, entry.Name())
		m, err := vault.ReadManifest(vaultPath)
		if err != nil {
			continue // not a generated vault
		}

		record := catalog.VaultRecord{
			Name:      m.VaultName,
			MainTopic: m.MainTopic,
			Path:      vaultPath,
			NoteCount: m.NoteCount,
			Density:   m.Density,
			Seed:      m.Seed,
			Model:     m.Model,
			CreatedAt: m.CreatedAt,
		}
		notes := make([]catalog.NoteRecord, 0, len(m.Hubs))
		for _, hub := range m.Hubs {
			notes = append(notes, catalog.NoteRecord{
				Topic:    hub.Topic,
				NoteType: string(content.Classify(hub.Topic)),
				Degree:   hub.Degree,
				Filename: vault.SanitizeName(hub.Topic),
			})
		}

		if err := store.Record(context.Background(), record, notes); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record %s: %v\n", m.VaultName, err)
			continue
		}
		fmt.Printf("  synced %s (%d notes)\n", m.VaultName, len(notes))
		synced++
	}

	fmt.Printf("%d vault(s) synced\n", synced)
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	basePath, _ := cmd.Flags().GetString("base-path")
	return catalog.Open(resolveBasePath(basePath))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	for _, c := range []*cobra.Command{catalogListCmd, catalogShowCmd} {
		c.Flags().String("base-path", "", "base directory for vaults (default: ~/Obsidian-Vaults)")
		c.Flags().Bool("json", false, "output as JSON")
		catalogCmd.AddCommand(c)
	}
	catalogSyncCmd.Flags().String("base-path", "", "base directory for vaults (default: ~/Obsidian-Vaults)")
	catalogCmd.AddCommand(catalogSyncCmd)
	rootCmd.AddCommand(catalogCmd)
}
