package config

import (
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: Config{Links: []LinkSpec{
				{Source: "zsh", Target: "$XDG_CONFIG_HOME/zsh"},
				{Source: "home/.zshenv", Target: "~/.zshenv"},
			}},
		},
		{
			name: "empty list",
			cfg:  Config{},
		},
		{
			name:    "missing source",
			cfg:     Config{Links: []LinkSpec{{Target: "~/.zshenv"}}},
			wantErr: true,
		},
		{
			name:    "missing target",
			cfg:     Config{Links: []LinkSpec{{Source: "zsh"}}},
			wantErr: true,
		},
		{
			name: "duplicate target",
			cfg: Config{Links: []LinkSpec{
				{Source: "a", Target: "~/.x"},
				{Source: "b", Target: "~/.x"},
			}},
			wantErr: true,
		},
		{
			name:    "unknown format",
			cfg:     Config{Output: Output{Format: "xml"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLinkSpecString(t *testing.T) {
	assert.Equal(t, "zsh -> $XDG_CONFIG_HOME/zsh", LinkSpec{Source: "zsh", Target: "$XDG_CONFIG_HOME/zsh"}.String())
}
