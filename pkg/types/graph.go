// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the vault-engine pipeline.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// Graph is the interconnected topic graph for one vault generation: the
// ordered topic sequence plus a symmetric adjacency mapping. It is built
// once, before any note is assembled, and never mutated afterwards.
type Graph struct {
	// Topics is the generation-ordered topic sequence. The main topic is
	// always index 0. Position matters: edge sampling favors topics that
	// are close together in this sequence.
	Topics []string `json:"topics" yaml:"topics"`

	// Related maps each topic to its related topics in insertion order.
	// The mapping is a set (no duplicates, no self-edges) and symmetric:
	// if A lists B, B lists A.
	Related map[string][]string `json:"related" yaml:"related"`
}

// Degree returns the number of topics related to topic.
func (g Graph) Degree(topic string) int {
	return len(g.Related[topic])
}

// Neighbors returns topic's related topics in insertion order. The returned
// slice is the graph's own; callers must not modify it.
func (g Graph) Neighbors(topic string) []string {
	return g.Related[topic]
}

// HubEntry is one row of a hub ranking: a topic and its degree.
type HubEntry struct {
	Topic  string `json:"topic" yaml:"topic"`
	Degree int    `json:"degree" yaml:"degree"`
}
