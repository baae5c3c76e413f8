// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/vault-engine/pkg/types"
)

// indexNoteName and hubNoteName are the fixed identifiers of the two
// navigation documents every vault carries.
const (
	indexNoteName = "README"
	hubNoteName   = "Knowledge Hubs"
)

// topHubCount bounds the hub note to the most connected topics.
const topHubCount = 10

// buildIndexNote renders the README document: an overview of the vault
// with links to the main topic and every note, sorted for scanning.
func buildIndexNote(mainTopic string, topics []string, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - Knowledge Vault\n\n", mainTopic)
	fmt.Fprintf(&b, "**Created:** %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "This vault contains interconnected knowledge about **%s**. Use the graph view in Obsidian to explore the connections between concepts.\n\n", mainTopic)
	b.WriteString("## Quick Navigation\n\n")
	b.WriteString("### Main Topic\n")
	fmt.Fprintf(&b, "- [[%s]]\n\n", SanitizeName(mainTopic))
	b.WriteString("### All Topics\n\n")

	sorted := append([]string(nil), topics...)
	sort.Strings(sorted)
	for _, topic := range sorted {
		fmt.Fprintf(&b, "- [[%s]]\n", SanitizeName(topic))
	}

	b.WriteString("\n## Graph View\n\n")
	b.WriteString("Open the graph view in Obsidian (Ctrl+G / Cmd+G) to visualize the connections between all notes.\n\n")
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Notes:** %d\n", len(topics))
	fmt.Fprintf(&b, "- **Main Topic:** %s\n", mainTopic)
	b.WriteString("- **Connection Density:** High - all notes are interconnected\n\n")
	b.WriteString("## How to Use\n\n")
	b.WriteString("1. Open this vault in Obsidian\n")
	b.WriteString("2. Explore notes by clicking links\n")
	b.WriteString("3. Use graph view to see connections\n")
	b.WriteString("4. Add your own notes and connections\n")

	return b.String()
}

// buildHubNote renders the Knowledge Hubs document from the ranking: the
// top connected topics with their connection counts. Topics whose note
// failed to persist fall back to their sanitized name so the link still
// resolves if the note is created later.
func buildHubNote(hubs []types.HubEntry, createdNotes map[string]string) string {
	var b strings.Builder

	b.WriteString("# Knowledge Hubs\n\n")
	b.WriteString("These are the most interconnected nodes in the vault - excellent starting points for exploration.\n\n")
	b.WriteString("## Central Hubs\n\n")

	for i, hub := range hubs {
		if i >= topHubCount {
			break
		}
		name, ok := createdNotes[hub.Topic]
		if !ok {
			name = SanitizeName(hub.Topic)
		}
		fmt.Fprintf(&b, "- [[%s]] (%d connections)\n", name, hub.Degree)
	}

	return b.String()
}
