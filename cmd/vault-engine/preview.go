// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vault-engine/internal/graph"
	"github.com/pdiddy/vault-engine/internal/topics"
	"github.com/pdiddy/vault-engine/pkg/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the topic graph and hub ranking without writing files",
	Long: `Preview builds the deterministic topic sequence and the connection graph
for the given parameters and prints the hub ranking. Nothing touches disk
and no AI calls are made, so the output depends only on topic, notes,
density, and seed.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "main topic (required)")
	previewCmd.Flags().Int("notes", 30, "number of topics to derive")
	previewCmd.Flags().Float64("density", 0.4, "connection density in [0,1]; values outside are clamped")
	previewCmd.Flags().Int64("seed", 0, "random seed for edge sampling (default: time-based)")
	previewCmd.Flags().Bool("json", false, "output the ranking as JSON")
	previewCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	notes, _ := cmd.Flags().GetInt("notes")
	density, _ := cmd.Flags().GetFloat64("density")
	seed, _ := cmd.Flags().GetInt64("seed")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if notes < 1 {
		notes = 30
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	density = types.ClampDensity(density)

	topicList := topics.Fallback(topic, notes)
	g := graph.Build(topicList, density, rand.New(rand.NewSource(seed)))
	hubs := graph.RankHubs(g)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hubs)
	}

	fmt.Printf("Topics: %d   Density: %.2f   Seed: %d\n\n", notes, density, seed)
	fmt.Printf("%-4s  %-50s  %s\n", "Rank", "Topic", "Connections")
	fmt.Println(strings.Repeat("-", 70))
	for i, hub := range hubs {
		name := hub.Topic
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		fmt.Printf("%-4d  %-50s  %d\n", i+1, name, hub.Degree)
	}
	return nil
}
