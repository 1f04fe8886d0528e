package config

import (
	"bytes"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

const generatedHeader = `# dotlink configuration
#
# Place this file at the root of your dotfiles repository as dotlink.toml.
# Sources are relative to that root. Targets may use ~, $HOME,
# $XDG_CONFIG_HOME or any other environment variable.

`

// GenerateTOML renders cfg as a starter dotlink.toml
func GenerateTOML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}

// GenerateCommented returns the embedded defaults with every value
// commented out, for users who only want to override a few settings
func GenerateCommented() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines and comments as-is
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Tables and values alike, so the commented file parses as empty
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
