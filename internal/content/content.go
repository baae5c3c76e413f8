// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content assembles note documents: AI-generated prose when the
// backend cooperates, a structured template otherwise. Every note carries a
// Related Topics section with wiki-style links regardless of which path ran.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pdiddy/vault-engine/internal/genai"
	"github.com/pdiddy/vault-engine/pkg/types"
)

// relatedMarker is the heading the links section lives under. The AI is
// asked to include it; when it does, the section is not duplicated.
const relatedMarker = "## Related Topics"

// notePromptTmpl is the prose prompt sent to the backend for each note.
var notePromptTmpl = template.Must(template.New("note").Parse(`Create a comprehensive Obsidian note about "{{.Topic}}".

Note type: {{.NoteType}}
Related topics: {{.Related}}

Include:
1. A clear introduction explaining the topic
2. Key concepts and definitions
3. Important details and context
4. Examples or applications if relevant
5. A "Related Topics" section with links to: {{.Related}}

Format as clean markdown. Use [[double brackets]] for internal links.
Keep it informative and well-structured.`))

const noteSystemRole = "You are a knowledge management expert creating interconnected notes for an Obsidian vault."

// noteTypeKeywords drive Classify. First match wins; anything unmatched is
// a concept.
var noteTypeKeywords = []struct {
	noteType types.NoteType
	keywords []string
}{
	{types.NotePerson, []string{"person", "author", "scientist"}},
	{types.NoteEvent, []string{"event", "meeting", "conference"}},
	{types.NoteProject, []string{"project", "case study"}},
}

// Classify derives a note type from the topic text by keyword matching.
// Pure function of the topic string.
func Classify(topic string) types.NoteType {
	lower := strings.ToLower(topic)
	for _, entry := range noteTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.noteType
			}
		}
	}
	return types.NoteConcept
}

// Assemble produces the markdown document for one topic. The backend is
// asked for prose; any failure is logged to w and degrades to the
// deterministic template. In both cases the result ends with a Related
// Topics section linking every related topic.
func Assemble(ctx context.Context, backend genai.Backend, topic string, related []string, noteType types.NoteType, w io.Writer) string {
	text, err := requestProse(ctx, backend, topic, related, noteType)
	if err != nil {
		// The null provider is a configuration, not a failure; only log
		// when a configured backend actually failed.
		if !errors.Is(err, genai.ErrUnavailable) {
			fmt.Fprintf(w, "  note content using template: %v\n", err)
		}
		return fallbackNote(topic, related, noteType)
	}

	if !strings.Contains(text, relatedMarker) {
		text += linksSection(related)
	}
	return text
}

// requestProse renders the note prompt and calls the backend.
func requestProse(ctx context.Context, backend genai.Backend, topic string, related []string, noteType types.NoteType) (string, error) {
	var buf bytes.Buffer
	err := notePromptTmpl.Execute(&buf, struct {
		Topic    string
		NoteType types.NoteType
		Related  string
	}{topic, noteType, strings.Join(related, ", ")})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	return backend.GenerateText(ctx, genai.TextRequest{
		System:      noteSystemRole,
		Prompt:      buf.String(),
		Temperature: 0.7,
		MaxTokens:   1000,
	})
}

// linksSection renders the Related Topics block with one [[link]] per topic.
func linksSection(related []string) string {
	var b strings.Builder
	b.WriteString("\n\n" + relatedMarker + "\n")
	for _, r := range related {
		fmt.Fprintf(&b, "- [[%s]]\n", r)
	}
	return b.String()
}

// fallbackNote is the deterministic template document: overview, key
// points, details, related topics, tags.
func fallbackNote(topic string, related []string, noteType types.NoteType) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", topic)
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "This note covers %s as a %s.\n\n", topic, noteType)
	b.WriteString("## Key Points\n\n")
	b.WriteString("- Add your key insights here\n")
	fmt.Fprintf(&b, "- Important information about %s\n", topic)
	b.WriteString("- Connections to other concepts\n\n")
	b.WriteString("## Details\n\n")
	b.WriteString("Expand on the topic here with relevant information and context.\n")
	b.WriteString(linksSection(related))
	fmt.Fprintf(&b, "\n## Tags\n#%s #%s\n", noteType, strings.ToLower(strings.ReplaceAll(topic, " ", "")))

	return b.String()
}
