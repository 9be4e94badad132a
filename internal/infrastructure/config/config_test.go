package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  path: /tmp/gallery.db
jwt:
  secret: s3cret
`)

	c, err := read(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.Equal(t, "/tmp/gallery.db", c.Database.Path)
	assert.Equal(t, "0.0.0.0:8080", c.Server.GetAddress())
	assert.Equal(t, []string{"*"}, c.Server.CORSOrigins)
	assert.Equal(t, 30*time.Second, c.Server.GetShutdownTimeout())
	assert.Equal(t, 15*time.Minute, c.JWT.GetAccessTokenExpiry())
	assert.Equal(t, "info", c.Log.Level)
}

func TestReadEnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("SERVER_PORT", "9100")

	c, err := read(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 9100, c.Server.Port)
}

func TestReadMissingFile(t *testing.T) {
	_, err := read(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	d := &DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "gallery", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=gallery sslmode=disable", d.GetDSN())
}
