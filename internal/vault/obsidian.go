// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// obsidianDir is the configuration subdirectory Obsidian expects.
const obsidianDir = ".obsidian"

// appConfig mirrors Obsidian's app.json display settings. The key set and
// values are fixed; there is no algorithmic content here.
type appConfig struct {
	NewFileLocation      string `json:"newFileLocation"`
	NewFileFolderPath    string `json:"newFileFolderPath"`
	AttachmentFolderPath string `json:"attachmentFolderPath"`
	ShowLineNumber       bool   `json:"showLineNumber"`
	Spellcheck           bool   `json:"spellcheck"`
	AlwaysUpdateLinks    bool   `json:"alwaysUpdateLinks"`
	StrictLineBreaks     bool   `json:"strictLineBreaks"`
}

// graphConfig mirrors Obsidian's graph.json physics-simulation settings,
// tuned so a generated vault opens with a readable graph view.
type graphConfig struct {
	CollapseFilter      bool     `json:"collapse-filter"`
	Search              string   `json:"search"`
	ShowTags            bool     `json:"showTags"`
	ShowAttachments     bool     `json:"showAttachments"`
	HideUnresolved      bool     `json:"hideUnresolved"`
	ShowOrphans         bool     `json:"showOrphans"`
	CollapseColorGroups bool     `json:"collapse-color-groups"`
	ColorGroups         []string `json:"colorGroups"`
	CollapseDisplay     bool     `json:"collapse-display"`
	ShowArrow           bool     `json:"showArrow"`
	TextFadeMultiplier  float64  `json:"textFadeMultiplier"`
	NodeSizeMultiplier  float64  `json:"nodeSizeMultiplier"`
	LineSizeMultiplier  float64  `json:"lineSizeMultiplier"`
	CollapseForces      bool     `json:"collapse-forces"`
	CenterStrength      float64  `json:"centerStrength"`
	RepelStrength       float64  `json:"repelStrength"`
	LinkStrength        float64  `json:"linkStrength"`
	LinkDistance        float64  `json:"linkDistance"`
	Scale               float64  `json:"scale"`
}

// WriteObsidianConfig writes .obsidian/app.json and .obsidian/graph.json
// under vaultPath.
func WriteObsidianConfig(vaultPath string) error {
	dir := filepath.Join(vaultPath, obsidianDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", obsidianDir, err)
	}

	app := appConfig{
		NewFileLocation:      "folder",
		NewFileFolderPath:    "",
		AttachmentFolderPath: "attachments",
		ShowLineNumber:       true,
		Spellcheck:           true,
		AlwaysUpdateLinks:    true,
		StrictLineBreaks:     false,
	}
	if err := writeJSON(filepath.Join(dir, "app.json"), app); err != nil {
		return err
	}

	graph := graphConfig{
		CollapseFilter:      true,
		Search:              "",
		ShowTags:            true,
		ShowAttachments:     true,
		HideUnresolved:      false,
		ShowOrphans:         true,
		CollapseColorGroups: true,
		ColorGroups:         []string{},
		CollapseDisplay:     true,
		ShowArrow:           true,
		TextFadeMultiplier:  0,
		NodeSizeMultiplier:  1,
		LineSizeMultiplier:  1,
		CollapseForces:      true,
		CenterStrength:      0.518713248970312,
		RepelStrength:       10,
		LinkStrength:        1,
		LinkDistance:        250,
		Scale:               1.0,
	}
	return writeJSON(filepath.Join(dir, "graph.json"), graph)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
