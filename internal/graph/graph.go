// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph constructs the interconnected topic graph and ranks hub topics.
// See docs/ARCHITECTURE.md § Graph Construction.
package graph

import (
	"math"
	"math/rand"

	"github.com/pdiddy/vault-engine/pkg/types"
)

// minDegree is the floor every node is repaired up to (N-1 when N <= 2).
const minDegree = 2

// Build constructs a symmetric adjacency mapping over the ordered topic
// sequence. Edges are sampled probabilistically with a locality bias: the
// probability of linking two topics decreases with their distance in the
// sequence, and topics farther apart than the distance window are never
// sampled directly. After sampling, each node is repaired up to the minimum
// degree, truncated to the soft degree cap, and the whole mapping is closed
// under symmetry.
//
// The symmetry closure only adds edges, so post-closure degree can exceed
// the cap. That is intentional: the cap is a sampling target, not a ceiling.
//
// The pseudo-random source is injected so the same (topics, density, seed)
// always produces the same graph.
func Build(topics []string, density float64, rng *rand.Rand) types.Graph {
	g := types.Graph{
		Topics:  append([]string(nil), topics...),
		Related: make(map[string][]string, len(topics)),
	}
	for _, t := range g.Topics {
		g.Related[t] = []string{}
	}

	n := len(g.Topics)
	if n <= 1 {
		return g
	}

	targetDegree := max(minDegree, int(math.Round(float64(n)*density)))
	maxDistance := max(1, int(math.Round(float64(n)*density*2)))

	// Probabilistic sampling with locality bias. Sets are per-node and may
	// be asymmetric at this stage.
	for i, topic := range g.Topics {
		for j, other := range g.Topics {
			if i == j {
				continue
			}
			distance := i - j
			if distance < 0 {
				distance = -distance
			}
			if distance > maxDistance {
				continue
			}
			prob := density * (1.0 - (float64(distance)/float64(maxDistance))*0.5)
			if rng.Float64() < prob {
				g.Related[topic] = append(g.Related[topic], other)
			}
		}
	}

	// Minimum-degree repair: append the nearest topics by sequence distance
	// (earlier index wins ties) until each node has minDegree neighbors.
	for i, topic := range g.Topics {
		g.Related[topic] = repairDegree(g.Topics, i, g.Related[topic])
	}

	// Soft degree cap, preserving insertion order so nearer, earlier-sampled
	// edges survive.
	for _, topic := range g.Topics {
		if len(g.Related[topic]) > targetDegree {
			g.Related[topic] = g.Related[topic][:targetDegree]
		}
	}

	// Symmetry closure. Append-only: an edge kept on one side for density
	// reasons is never removed from the other.
	for _, topic := range g.Topics {
		for _, other := range g.Related[topic] {
			if !contains(g.Related[other], topic) {
				g.Related[other] = append(g.Related[other], topic)
			}
		}
	}

	return g
}

// repairDegree appends the nearest unlinked topics to related until it has
// minDegree entries (or every other topic when fewer exist).
func repairDegree(topics []string, i int, related []string) []string {
	need := minDegree - len(related)
	if need <= 0 {
		return related
	}

	// Candidates ordered by distance from i, earlier index first on ties.
	for distance := 1; distance < len(topics) && need > 0; distance++ {
		for _, j := range []int{i - distance, i + distance} {
			if j < 0 || j >= len(topics) || need <= 0 {
				continue
			}
			candidate := topics[j]
			if contains(related, candidate) {
				continue
			}
			related = append(related, candidate)
			need--
		}
	}
	return related
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
