// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vault-engine/pkg/types"
)

var quickstartCmd = &cobra.Command{
	Use:   "quickstart",
	Short: "Generate a vault interactively",
	Long: `Quickstart prompts for the vault parameters one at a time and then runs
the same generation as the generate command. Blank or invalid answers fall
back to the documented defaults, so pressing Enter through every prompt
produces a working vault.`,
	RunE: runQuickstart,
}

func init() {
	rootCmd.AddCommand(quickstartCmd)
}

func runQuickstart(cmd *cobra.Command, args []string) error {
	cfg, err := promptGenerateConfig(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	return generateVault(cmd.Context(), cfg, true)
}

// promptGenerateConfig walks the user through the generation parameters.
func promptGenerateConfig(in io.Reader, out io.Writer) (types.GenerateConfig, error) {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "vault-engine quickstart")
	fmt.Fprintln(out)

	topic, err := prompt(reader, out, "Enter the main topic for your vault: ")
	if err != nil {
		return types.GenerateConfig{}, err
	}
	if topic == "" {
		return types.GenerateConfig{}, fmt.Errorf("a main topic is required")
	}

	defaultName := strings.ReplaceAll(topic, " ", "-")
	vaultName, err := prompt(reader, out, fmt.Sprintf("Vault name (default: %s): ", defaultName))
	if err != nil {
		return types.GenerateConfig{}, err
	}
	if vaultName == "" {
		vaultName = defaultName
	}

	notesAnswer, err := prompt(reader, out, "Number of notes to create (default: 30): ")
	if err != nil {
		return types.GenerateConfig{}, err
	}
	notes := 30
	if notesAnswer != "" {
		if n, convErr := strconv.Atoi(notesAnswer); convErr == nil && n >= 1 {
			notes = n
		} else {
			fmt.Fprintln(out, "Invalid input, using default: 30")
		}
	}

	densityAnswer, err := prompt(reader, out, "Connection density 0.0-1.0 (default: 0.4): ")
	if err != nil {
		return types.GenerateConfig{}, err
	}
	density := 0.4
	if densityAnswer != "" {
		if d, convErr := strconv.ParseFloat(densityAnswer, 64); convErr == nil {
			density = types.ClampDensity(d)
		} else {
			fmt.Fprintln(out, "Invalid input, using default: 0.4")
		}
	}

	basePath, err := prompt(reader, out, fmt.Sprintf("Vault base path (default: %s): ", defaultBasePath))
	if err != nil {
		return types.GenerateConfig{}, err
	}

	return buildGenerateConfig(topic, vaultName, notes, density, basePath, "", "", time.Now().UnixNano()), nil
}

// prompt prints a question and returns the trimmed answer. EOF with no
// pending input yields an empty answer so piped sessions can stop early.
func prompt(reader *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
