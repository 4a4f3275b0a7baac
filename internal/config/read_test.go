package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogwire/blogwire/internal/entity"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestReadFile(t *testing.T) {
	path := writeConfig(t, `{
		"url": "http://blog.example.com/xmlrpc.php",
		"blogId": "1",
		"username": "alice",
		"password": "secret",
		"dialect": "movabletype"
	}`)

	cfg, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, "http://blog.example.com/xmlrpc.php", cfg.URL)
	assert.Equal(t, "1", cfg.BlogID)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, entity.DialectMovableType, cfg.Dialect)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `{
		"url": "http://blog.example.com/xmlrpc.php",
		"username": "alice",
		"dialect": "metaweblog"
	}`)

	t.Setenv("BLOGWIRE_USERNAME", "bob")
	t.Setenv("BLOGWIRE_DIALECT", "wordpressbuggy")

	cfg, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.Username)
	assert.Equal(t, entity.DialectWordpressBuggy, cfg.Dialect)
}

func TestDialectDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"url": "http://blog.example.com/xmlrpc.php",
		"username": "alice"
	}`)

	cfg, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, entity.DialectMetaWeblog, cfg.Dialect)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{
			name:     "url is required",
			contents: `{"username": "alice"}`,
			wantErr:  "url is required",
		},
		{
			name:     "username is required",
			contents: `{"url": "http://blog.example.com/xmlrpc.php"}`,
			wantErr:  "username is required",
		},
		{
			name: "unknown dialect",
			contents: `{
				"url": "http://blog.example.com/xmlrpc.php",
				"username": "alice",
				"dialect": "livejournal"
			}`,
			wantErr: "unknown dialect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(writeConfig(t, tt.contents))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}
