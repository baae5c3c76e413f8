// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"sort"

	"github.com/pdiddy/vault-engine/pkg/types"
)

// RankHubs returns every topic paired with its degree, sorted by degree
// descending. The sort is stable over the generation order, so of two
// equally connected topics the one generated earlier ranks first. Callers
// typically keep a bounded prefix (e.g. the top 10) as exploration
// starting points.
func RankHubs(g types.Graph) []types.HubEntry {
	hubs := make([]types.HubEntry, 0, len(g.Topics))
	for _, topic := range g.Topics {
		hubs = append(hubs, types.HubEntry{Topic: topic, Degree: g.Degree(topic)})
	}
	sort.SliceStable(hubs, func(i, j int) bool {
		return hubs[i].Degree > hubs[j].Degree
	})
	return hubs
}
