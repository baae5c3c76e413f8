// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDirectory(t *testing.T) {
	secrets, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestLoad_ReadsTrimmedValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openai-api-key"), []byte("sk-test-123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-key"), []byte("   \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("nope"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	secrets, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"openai-api-key": "sk-test-123"}, secrets)
}

func TestResolve_Precedence(t *testing.T) {
	loaded := map[string]string{"openai-api-key": "from-file"}
	t.Setenv("VAULT_ENGINE_OPENAI_API_KEY", "from-env")

	assert.Equal(t, "from-flag",
		Resolve(loaded, "openai-api-key", "VAULT_ENGINE_OPENAI_API_KEY", "from-flag"))
	assert.Equal(t, "from-file",
		Resolve(loaded, "openai-api-key", "VAULT_ENGINE_OPENAI_API_KEY", ""))
	assert.Equal(t, "from-env",
		Resolve(map[string]string{}, "openai-api-key", "VAULT_ENGINE_OPENAI_API_KEY", ""))
	assert.Equal(t, "",
		Resolve(map[string]string{}, "openai-api-key", "VAULT_ENGINE_UNSET_KEY", ""))
}
