package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		want        *Config
		wantErr     bool
		errContains string
	}{
		{
			name:     "toml",
			filename: "config.toml",
			content:  "log_level = \"debug\"\nstrict = true\n",
			want:     &Config{LogLevel: "debug", Strict: true},
		},
		{
			name:     "yaml",
			filename: "config.yaml",
			content:  "log_level: warn\nlint: true\n",
			want:     &Config{LogLevel: "warn", Lint: true},
		},
		{
			name:     "yml extension",
			filename: "config.yml",
			content:  "strict: true\n",
			want:     &Config{Strict: true},
		},
		{
			name:     "empty yaml",
			filename: "config.yaml",
			content:  "",
			want:     &Config{},
		},
		{
			name:        "unknown toml key",
			filename:    "config.toml",
			content:     "colour = \"red\"\n",
			wantErr:     true,
			errContains: "colour",
		},
		{
			name:        "unknown yaml key",
			filename:    "config.yaml",
			content:     "colour: red\n",
			wantErr:     true,
			errContains: "colour",
		},
		{
			name:        "malformed toml",
			filename:    "config.toml",
			content:     "strict = ",
			wantErr:     true,
			errContains: "error decoding config file",
		},
		{
			name:        "unsupported extension",
			filename:    "config.json",
			content:     "{}",
			wantErr:     true,
			errContains: "unsupported config file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			config, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, config)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
