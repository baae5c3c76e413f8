// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topics produces the ordered, unique topic sequence a vault is
// built from. The generative backend is preferred; a deterministic qualifier
// rotation guarantees output when it is absent or misbehaves.
package topics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pdiddy/vault-engine/internal/genai"
)

// topicsPromptTmpl asks the backend for a JSON array of topic names.
var topicsPromptTmpl = template.Must(template.New("topics").Parse(`Generate {{.Count}} interconnected topics related to "{{.MainTopic}}" for a knowledge base.

Return a JSON array of topic names (strings only, no other text).
Topics should be:
- Diverse and interesting
- Naturally interconnected
- Suitable for a knowledge graph
- Clear and specific

Example format: ["Topic 1", "Topic 2", "Topic 3", ...]`))

const topicsSystemRole = "You are a knowledge base architect. Return only valid JSON arrays."

// baseQualifiers seed the deterministic fallback sequence.
var baseQualifiers = []string{
	"Fundamentals",
	"Applications",
	"History",
	"Best Practices",
	"Advanced Concepts",
	"Examples",
	"Resources",
}

// extensionQualifiers extend the fallback sequence once baseQualifiers are
// exhausted, cycling with a numeric suffix so names stay unique.
var extensionQualifiers = []string{
	"Key Concepts",
	"Important Principles",
	"Common Patterns",
	"Use Cases",
	"Related Technologies",
	"Future Trends",
	"Getting Started",
	"Deep Dive",
	"Quick Reference",
	"Troubleshooting",
}

// Build returns exactly count unique topic names, the first always equal to
// mainTopic. The generative backend is asked for the list; any failure
// (provider error, unparseable response) is logged to w and degrades to the
// deterministic fallback. Short responses are padded from the fallback
// sequence so the contract holds regardless of what the backend returns.
func Build(ctx context.Context, backend genai.Backend, mainTopic string, count int, w io.Writer) []string {
	if count < 1 {
		count = 1
	}

	generated, err := requestTopics(ctx, backend, mainTopic, count)
	if err != nil {
		fmt.Fprintf(w, "  topic generation using templates: %v\n", err)
		return Fallback(mainTopic, count)
	}

	result := make([]string, 0, count)
	seen := map[string]bool{mainTopic: true}
	result = append(result, mainTopic)

	for _, t := range generated {
		if len(result) >= count {
			break
		}
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}

	// Pad from the deterministic sequence when the backend came up short.
	for _, t := range Fallback(mainTopic, count+len(result)) {
		if len(result) >= count {
			break
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}

	return result
}

// requestTopics calls the backend and parses its response as a JSON array
// of strings, tolerating a Markdown code-fence wrapper.
func requestTopics(ctx context.Context, backend genai.Backend, mainTopic string, count int) ([]string, error) {
	var buf bytes.Buffer
	if err := topicsPromptTmpl.Execute(&buf, struct {
		MainTopic string
		Count     int
	}{mainTopic, count}); err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	text, err := backend.GenerateText(ctx, genai.TextRequest{
		System:      topicsSystemRole,
		Prompt:      buf.String(),
		Temperature: 0.8,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, err
	}

	var parsed []string
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return nil, fmt.Errorf("parsing topic list: %w", err)
	}
	return parsed, nil
}

// stripCodeFence unwraps a ``` fence, dropping an optional leading "json"
// language tag, and returns the inner text trimmed.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.SplitN(s, "```", 3)
	if len(parts) < 2 {
		return s
	}
	body := strings.TrimPrefix(parts[1], "json")
	return strings.TrimSpace(body)
}

// Fallback deterministically derives count unique topic names from
// mainTopic: the main topic itself, a fixed rotation of base qualifiers,
// then extension qualifiers cycled with a numeric suffix from the second
// pass onward.
func Fallback(mainTopic string, count int) []string {
	if count < 1 {
		count = 1
	}

	result := []string{mainTopic}
	for _, q := range baseQualifiers {
		if len(result) >= count {
			break
		}
		result = append(result, fmt.Sprintf("%s %s", mainTopic, q))
	}

	for i := 0; len(result) < count; i++ {
		q := extensionQualifiers[i%len(extensionQualifiers)]
		cycle := i / len(extensionQualifiers)
		name := fmt.Sprintf("%s - %s", mainTopic, q)
		if cycle > 0 {
			name = fmt.Sprintf("%s - %s %d", mainTopic, q, cycle+1)
		}
		result = append(result, name)
	}

	return result[:count]
}
