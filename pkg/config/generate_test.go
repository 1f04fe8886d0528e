package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTOML_LoadsBack(t *testing.T) {
	want := &Config{
		CreateParents: false,
		Output:        Output{Format: FormatText},
		Links: []LinkSpec{
			{Source: "zsh", Target: "$XDG_CONFIG_HOME/zsh"},
			{Source: "home/.gitconfig", Target: "~/.gitconfig"},
		},
	}

	data, err := GenerateTOML(want)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# dotlink configuration"))
	assert.Contains(t, string(data), "[[links]]")

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "dotlink.toml"), data, 0644))

	got, err := Load(LoadOptions{SourceRoot: root})
	require.NoError(t, err)
	assert.Equal(t, want.Links, got.Links)
	assert.Equal(t, want.CreateParents, got.CreateParents)
	assert.Equal(t, want.Output, got.Output)
}

func TestGenerateCommented(t *testing.T) {
	content := GenerateCommented()

	assert.Contains(t, content, "# create_parents = true")
	assert.Contains(t, content, "# [[links]]")
	assert.Contains(t, content, `# source = "zsh"`)

	// Loading it changes nothing
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "dotlink.toml"), []byte(content), 0644))
	cfg, err := Load(LoadOptions{SourceRoot: root})
	require.NoError(t, err)
	assert.Len(t, cfg.Links, 6)
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# header\n\nkey = 1\n[table]\n  other = \"x\""
	want := "# header\n\n# key = 1\n# [table]\n#   other = \"x\""
	assert.Equal(t, want, commentOutConfigValues(in))
}
