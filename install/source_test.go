package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSourceYAML(t *testing.T) {
	path := writeFile(t, "install.yml", `
database:
  driver: mysql
  host: db.internal
  port: 3307
  database: agora
  username: agora
  password: secret
  prefix: agora_
url: https://forum.example.com
settings:
  forum_title: My Forum
  custom_header: hello
admin:
  username: root
  email: root@example.com
  password: longpassword
`)
	src, err := NewFileSource(path)
	require.NoError(t, err)
	assert.Equal(t, SourceFile, src.Kind())

	conf, err := src.DBConfig()
	require.NoError(t, err)
	assert.Equal(t, "mysql", conf.Driver)
	assert.Equal(t, "db.internal", conf.Host)
	assert.Equal(t, 3307, conf.Port)
	assert.Equal(t, "agora_", conf.Prefix)
	assert.NoError(t, ValidateDBConfig(conf))

	url, err := src.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://forum.example.com", url)

	settings, err := src.Settings()
	require.NoError(t, err)
	got := make(map[string]string)
	for _, v := range settings {
		got[v.Name] = v.Value
	}
	assert.Equal(t, "My Forum", got["forum_title"])
	assert.Equal(t, "hello", got["custom_header"])
	assert.Equal(t, "en", got["default_locale"]) // default kept

	admin, err := src.Admin()
	require.NoError(t, err)
	assert.Equal(t, "root", admin.Username)
	// confirmation mirrors password when not given
	assert.Equal(t, "longpassword", admin.PasswordConfirmation)
	assert.NoError(t, admin.Validate())
}

func TestFileSourceJSON(t *testing.T) {
	path := writeFile(t, "install.json", `{
  "database": {"driver": "sqlite", "host": "localhost", "database": "agora.db"},
  "url": "http://localhost",
  "admin": {
    "username": "admin",
    "email": "admin@example.com",
    "password": "password",
    "password_confirmation": "different"
  }
}`)
	src, err := NewFileSource(path)
	require.NoError(t, err)

	conf, err := src.DBConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", conf.Driver)
	assert.NoError(t, ValidateDBConfig(conf))

	// explicit confirmation is not overridden
	admin, err := src.Admin()
	require.NoError(t, err)
	assert.ErrorIs(t, admin.Validate(), ErrAdminMismatch)
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestPromptSourceNoTerminal(t *testing.T) {
	// stdin is not a terminal under go test
	_, err := NewPromptSource()
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestDefaultsSource(t *testing.T) {
	src := NewDefaultsSource()
	assert.Equal(t, SourceDefaults, src.Kind())

	conf, err := src.DBConfig()
	require.NoError(t, err)
	assert.NoError(t, ValidateDBConfig(conf))

	admin, err := src.Admin()
	require.NoError(t, err)
	assert.NoError(t, admin.Validate())

	settings, err := src.Settings()
	require.NoError(t, err)
	assert.NotEmpty(t, settings)
}
