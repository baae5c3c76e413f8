// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/vault-engine/internal/genai"
	"github.com/pdiddy/vault-engine/pkg/types"
)

func testGenerator(t *testing.T, noteCount int) (*Generator, string) {
	t.Helper()
	base := t.TempDir()
	g := &Generator{
		Backend: genai.NullBackend{},
		Config: types.GenerateConfig{
			AIConfig:    types.AIConfig{},
			GraphConfig: types.GraphConfig{NoteCount: noteCount, Density: 0.4, Seed: 42},
			VaultConfig: types.VaultConfig{BasePath: base, VaultName: "Go-Vault"},
			MainTopic:   "Go",
		},
		Out: io.Discard,
	}
	return g, filepath.Join(base, "Go-Vault")
}

func TestGenerate_FullTemplateRun(t *testing.T) {
	g, vaultPath := testGenerator(t, 12)

	summary, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if summary.VaultPath != vaultPath {
		t.Errorf("VaultPath = %q", summary.VaultPath)
	}
	if summary.NotesCreated != 12 || summary.NotesFailed != 0 {
		t.Errorf("created/failed = %d/%d", summary.NotesCreated, summary.NotesFailed)
	}
	if summary.Model != templateModel {
		t.Errorf("Model = %q", summary.Model)
	}
	if len(summary.Hubs) != 12 {
		t.Errorf("hubs = %d", len(summary.Hubs))
	}

	// Every topic note exists and carries its links section.
	for topic, name := range summary.CreatedNotes {
		data, err := os.ReadFile(filepath.Join(vaultPath, name+".md"))
		if err != nil {
			t.Fatalf("note %q: %v", topic, err)
		}
		if !strings.Contains(string(data), "## Related Topics") {
			t.Errorf("note %q missing links section", topic)
		}
		for _, neighbor := range summary.Graph.Neighbors(topic) {
			if !strings.Contains(string(data), "[["+neighbor+"]]") {
				t.Errorf("note %q missing link to %q", topic, neighbor)
			}
		}
	}
}

func TestGenerate_WritesNavigationDocuments(t *testing.T) {
	g, vaultPath := testGenerator(t, 8)

	summary, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	index, err := os.ReadFile(filepath.Join(vaultPath, "README.md"))
	if err != nil {
		t.Fatalf("README: %v", err)
	}
	if !strings.Contains(string(index), "# Go - Knowledge Vault") {
		t.Error("README missing title")
	}
	if !strings.Contains(string(index), "**Total Notes:** 8") {
		t.Error("README missing statistics")
	}
	for _, topic := range summary.Graph.Topics {
		if !strings.Contains(string(index), "[["+SanitizeName(topic)+"]]") {
			t.Errorf("README missing link to %q", topic)
		}
	}

	hubDoc, err := os.ReadFile(filepath.Join(vaultPath, "Knowledge Hubs.md"))
	if err != nil {
		t.Fatalf("Knowledge Hubs: %v", err)
	}
	top := summary.Hubs[0]
	want := "- [[" + summary.CreatedNotes[top.Topic] + "]]"
	if !strings.Contains(string(hubDoc), want) {
		t.Errorf("hub note missing %q:\n%s", want, hubDoc)
	}
}

func TestGenerate_WritesObsidianConfig(t *testing.T) {
	g, vaultPath := testGenerator(t, 3)

	if _, err := g.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	appData, err := os.ReadFile(filepath.Join(vaultPath, ".obsidian", "app.json"))
	if err != nil {
		t.Fatalf("app.json: %v", err)
	}
	var app map[string]any
	if err := json.Unmarshal(appData, &app); err != nil {
		t.Fatalf("parsing app.json: %v", err)
	}
	if app["newFileLocation"] != "folder" || app["showLineNumber"] != true {
		t.Errorf("app.json = %v", app)
	}

	graphData, err := os.ReadFile(filepath.Join(vaultPath, ".obsidian", "graph.json"))
	if err != nil {
		t.Fatalf("graph.json: %v", err)
	}
	var graphCfg map[string]any
	if err := json.Unmarshal(graphData, &graphCfg); err != nil {
		t.Fatalf("parsing graph.json: %v", err)
	}
	if graphCfg["linkDistance"] != 250.0 || graphCfg["repelStrength"] != 10.0 {
		t.Errorf("graph.json = %v", graphCfg)
	}
}

func TestGenerate_WritesManifest(t *testing.T) {
	g, vaultPath := testGenerator(t, 5)

	summary, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	m, err := ReadManifest(vaultPath)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.MainTopic != "Go" || m.VaultName != "Go-Vault" || m.NoteCount != 5 {
		t.Errorf("manifest = %+v", m)
	}
	if m.Seed != 42 || m.Density != 0.4 || m.Model != templateModel {
		t.Errorf("manifest parameters = %+v", m)
	}
	if len(m.Hubs) != len(summary.Hubs) {
		t.Errorf("manifest hubs = %d", len(m.Hubs))
	}
}

func TestGenerate_DensityClampedAndDeterministic(t *testing.T) {
	g, _ := testGenerator(t, 6)
	g.Config.Density = 3.5

	summary, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if summary.Density != 1.0 {
		t.Errorf("density = %v, want clamped 1.0", summary.Density)
	}

	// Same seed, second run elsewhere: identical graph.
	g2, _ := testGenerator(t, 6)
	g2.Config.Density = 3.5
	summary2, err := g2.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, topic := range summary.Graph.Topics {
		a := summary.Graph.Related[topic]
		b := summary2.Graph.Related[topic]
		if len(a) != len(b) {
			t.Fatalf("degree mismatch for %q", topic)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("%q neighbor %d differs", topic, i)
			}
		}
	}
}

type failingBackend struct{}

func (failingBackend) GenerateText(context.Context, genai.TextRequest) (string, error) {
	return "", errors.New("401 invalid api key")
}

func TestGenerate_LogsEveryProseDegradation(t *testing.T) {
	g, _ := testGenerator(t, 5)
	g.Backend = failingBackend{}
	var out strings.Builder
	g.Out = &out

	summary, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if summary.NotesCreated != 5 {
		t.Errorf("created = %d", summary.NotesCreated)
	}

	// One line from the topic builder plus one per note.
	if got := strings.Count(out.String(), "topic generation using templates"); got != 1 {
		t.Errorf("topic degradation lines = %d, want 1", got)
	}
	if got := strings.Count(out.String(), "note content using template"); got != 5 {
		t.Errorf("note degradation lines = %d, want 5:\n%s", got, out.String())
	}
}

func TestGenerate_RequiresMainTopic(t *testing.T) {
	g, _ := testGenerator(t, 3)
	g.Config.MainTopic = ""
	if _, err := g.Generate(context.Background()); err == nil {
		t.Error("expected error without a main topic")
	}
}

func TestBuildIndexNote_SortedLinks(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	doc := buildIndexNote("Go", []string{"Go", "Channels", "APIs"}, now)

	if !strings.Contains(doc, "**Created:** 2026-08-26 12:00:00") {
		t.Error("missing creation timestamp")
	}
	apis := strings.Index(doc, "[[APIs]]")
	channels := strings.Index(doc, "[[Channels]]")
	if apis == -1 || channels == -1 || apis > channels {
		t.Error("all-topics links not sorted")
	}
}

func TestBuildHubNote_TopTenWithFallbackNames(t *testing.T) {
	hubs := make([]types.HubEntry, 12)
	for i := range hubs {
		hubs[i] = types.HubEntry{Topic: strings.Repeat("t", i+1), Degree: 12 - i}
	}
	created := map[string]string{"t": "t-note"}

	doc := buildHubNote(hubs, created)

	if !strings.Contains(doc, "- [[t-note]] (12 connections)") {
		t.Errorf("missing created-note link:\n%s", doc)
	}
	// Second entry has no created note; falls back to sanitized topic.
	if !strings.Contains(doc, "- [[tt]] (11 connections)") {
		t.Errorf("missing fallback link:\n%s", doc)
	}
	if got := strings.Count(doc, "- [["); got != 10 {
		t.Errorf("hub entries = %d, want 10", got)
	}
}
