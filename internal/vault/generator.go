// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/pdiddy/vault-engine/internal/content"
	"github.com/pdiddy/vault-engine/internal/genai"
	"github.com/pdiddy/vault-engine/internal/graph"
	"github.com/pdiddy/vault-engine/internal/topics"
	"github.com/pdiddy/vault-engine/pkg/types"
)

// templateModel is recorded in the manifest when no AI backend is in play.
const templateModel = "template"

// Generator runs one whole vault generation: topic sequence, graph, notes,
// navigation documents, Obsidian configuration, and manifest. The adjacency
// mapping is fully built before any note is assembled and is read-only from
// then on.
type Generator struct {
	// Backend produces topic lists and prose; every Backend failure
	// degrades to deterministic templates.
	Backend genai.Backend

	// Config holds the run parameters. Density is clamped, zero counts
	// get defaults.
	Config types.GenerateConfig

	// Rand is the seeded source for edge sampling.
	Rand *rand.Rand

	// Out receives progress lines; nil discards them.
	Out io.Writer
}

// Summary reports what one generation run produced.
type Summary struct {
	VaultPath    string
	VaultName    string
	MainTopic    string
	Graph        types.Graph
	Hubs         []types.HubEntry
	NoteTypes    map[string]types.NoteType
	CreatedNotes map[string]string // topic -> sanitized note name
	NotesCreated int
	NotesFailed  int
	Density      float64
	Seed         int64
	Model        string
	CreatedAt    time.Time
}

// Generate builds the vault. Only vault-level I/O (directory creation,
// Obsidian configuration, manifest) can fail the run; a note that cannot be
// persisted is reported, skipped, and excluded from hub links.
func (g *Generator) Generate(ctx context.Context) (*Summary, error) {
	cfg := g.Config
	if cfg.MainTopic == "" {
		return nil, fmt.Errorf("main topic is required")
	}
	if cfg.NoteCount < 1 {
		cfg.NoteCount = 1
	}
	cfg.Density = types.ClampDensity(cfg.Density)

	out := g.Out
	if out == nil {
		out = io.Discard
	}

	vaultPath := filepath.Join(cfg.BasePath, cfg.VaultName)
	store, err := NewStore(vaultPath)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Creating vault: %s\n", cfg.VaultName)
	fmt.Fprintf(out, "Main topic: %s\n", cfg.MainTopic)
	fmt.Fprintf(out, "Generating %d interconnected notes...\n", cfg.NoteCount)

	rng := g.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	topicList := topics.Build(ctx, g.Backend, cfg.MainTopic, cfg.NoteCount, out)
	topicGraph := graph.Build(topicList, cfg.Density, rng)
	hubs := graph.RankHubs(topicGraph)

	summary := &Summary{
		VaultPath:    vaultPath,
		VaultName:    cfg.VaultName,
		MainTopic:    cfg.MainTopic,
		Graph:        topicGraph,
		Hubs:         hubs,
		NoteTypes:    make(map[string]types.NoteType, len(topicList)),
		CreatedNotes: make(map[string]string, len(topicList)),
		Density:      cfg.Density,
		Seed:         cfg.Seed,
		Model:        templateModel,
		CreatedAt:    time.Now(),
	}
	if cfg.APIKey != "" {
		summary.Model = cfg.Model
	}

	// The graph is immutable from here; each note reads only its own
	// adjacency entry.
	for _, topic := range topicList {
		fmt.Fprintf(out, "  Creating note: %s\n", topic)

		noteType := content.Classify(topic)
		summary.NoteTypes[topic] = noteType

		doc := content.Assemble(ctx, g.Backend, topic, topicGraph.Neighbors(topic), noteType, out)
		name := SanitizeName(topic)
		if err := store.CreateNote(name, doc); err != nil {
			fmt.Fprintf(out, "  warning: %v\n", err)
			summary.NotesFailed++
			continue
		}
		summary.CreatedNotes[topic] = name
		summary.NotesCreated++
	}

	if err := store.CreateNote(indexNoteName, buildIndexNote(cfg.MainTopic, topicList, summary.CreatedAt)); err != nil {
		fmt.Fprintf(out, "  warning: %v\n", err)
	}
	if err := store.CreateNote(hubNoteName, buildHubNote(hubs, summary.CreatedNotes)); err != nil {
		fmt.Fprintf(out, "  warning: %v\n", err)
	}

	if err := WriteObsidianConfig(vaultPath); err != nil {
		return nil, err
	}

	manifest := Manifest{
		VaultName: cfg.VaultName,
		MainTopic: cfg.MainTopic,
		NoteCount: cfg.NoteCount,
		Density:   cfg.Density,
		Seed:      cfg.Seed,
		Model:     summary.Model,
		CreatedAt: summary.CreatedAt,
		Hubs:      hubs,
	}
	if err := WriteManifest(vaultPath, manifest); err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "\nVault created at: %s\n", vaultPath)
	fmt.Fprintf(out, "  Notes created: %d\n", summary.NotesCreated)
	if summary.NotesFailed > 0 {
		fmt.Fprintf(out, "  Notes failed:  %d\n", summary.NotesFailed)
	}

	return summary, nil
}
