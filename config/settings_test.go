package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadSettings_FileAndDefaults(t *testing.T) {
	p := writeFile(t, t.TempDir(), "megam.yaml", `
host: api.megam.io
scheme: https
email: ops@example.com
api_key: k3y
org_id: ORG123
headers:
  X-Trace: "on"
`)
	c, err := LoadSettings(p)
	require.NoError(t, err)

	s := c.Get()
	assert.Equal(t, "api.megam.io", s.Host)
	assert.Equal(t, "https", s.Scheme)
	assert.Equal(t, "k3y", s.APIKey)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, "on", s.Headers["x-trace"])
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	t.Setenv("MEGAM_API_KEY", "from-env")
	t.Setenv("MEGAM_TIMEOUT", "5s")
	p := writeFile(t, t.TempDir(), "megam.yaml", "email: ops@example.com\napi_key: from-file\n")

	c, err := LoadSettings(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Get().APIKey)
	assert.Equal(t, 5*time.Second, c.Get().Timeout)
}

func TestLoadSettings_Invalid(t *testing.T) {
	p := writeFile(t, t.TempDir(), "megam.yaml", "scheme: ftp\nemail: not-an-email\n")

	_, err := LoadSettings(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme")
	assert.Contains(t, err.Error(), "email")
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MEGAM_EMAIL", "dev@example.com")
	t.Setenv("MEGAM_PASSWORD", "c2VjcmV0")
	t.Setenv("MEGAM_HOST", "10.0.0.5")

	s, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", s.Email)
	assert.Equal(t, "c2VjcmV0", s.Password)
	assert.Equal(t, "10.0.0.5", s.Host)
	assert.Equal(t, "http", s.Scheme)
}

func TestSettings_StringMasksSecrets(t *testing.T) {
	s := Settings{Scheme: "https", Host: "h", Email: "e@x.io", APIKey: "secret", Password: ""}
	out := s.String()
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "api_key=****")
	assert.NotContains(t, out, "password=****")
}

func TestConfig_ReloadNotifiesOnChange(t *testing.T) {
	p := writeFile(t, t.TempDir(), "megam.yaml", "email: a@example.com\n")
	c, err := LoadSettings(p, WithoutWatch[Settings]())
	require.NoError(t, err)

	var calls int32
	c.OnChange(func(old, new Settings) {
		if old.Email == "a@example.com" && new.Email == "b@example.com" {
			atomic.AddInt32(&calls, 1)
		}
	})

	require.NoError(t, os.WriteFile(p, []byte("email: b@example.com\n"), 0o600))
	c.handleConfigChange()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "b@example.com", c.Get().Email)

	// Reloading identical content does not notify.
	c.handleConfigChange()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestConfig_ReloadRejectsInvalid(t *testing.T) {
	p := writeFile(t, t.TempDir(), "megam.yaml", "email: a@example.com\n")
	c, err := LoadSettings(p, WithoutWatch[Settings]())
	require.NoError(t, err)

	var calls int32
	c.OnChange(func(old, new Settings) { atomic.AddInt32(&calls, 1) })

	require.NoError(t, os.WriteFile(p, []byte("email: a@example.com\nscheme: gopher\n"), 0o600))
	c.handleConfigChange()

	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.Equal(t, "http", c.Get().Scheme)
}

func TestConfig_CallbackPanicIsContained(t *testing.T) {
	p := writeFile(t, t.TempDir(), "megam.yaml", "org_id: ORG1\n")
	c, err := LoadSettings(p, WithoutWatch[Settings]())
	require.NoError(t, err)

	var calls int32
	c.OnChange(func(old, new Settings) { panic("boom") })
	c.OnChange(func(old, new Settings) { atomic.AddInt32(&calls, 1) })

	require.NoError(t, os.WriteFile(p, []byte("org_id: ORG2\n"), 0o600))
	assert.NotPanics(t, c.handleConfigChange)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestConfig_WatchPicksUpFileChange(t *testing.T) {
	p := writeFile(t, t.TempDir(), "megam.yaml", "org_id: ORG1\n")
	c, err := LoadSettings(p)
	require.NoError(t, err)

	var calls int32
	c.OnChange(func(old, new Settings) {
		if new.OrgID == "ORG2" {
			atomic.AddInt32(&calls, 1)
		}
	})

	require.NoError(t, os.WriteFile(p, []byte("org_id: ORG2\n"), 0o600))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) > 0 }, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "ORG2", c.Get().OrgID)
}

func TestChanged(t *testing.T) {
	assert.False(t, Changed(Settings{Host: "a"}, Settings{Host: "a"}))
	assert.True(t, Changed(Settings{Host: "a"}, Settings{Host: "b"}))
}
