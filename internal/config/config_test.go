package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/hibou/internal/counters"
	"github.com/rileyhilliard/hibou/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, 6, cfg.Refresh.FPS)
	assert.Equal(t, counters.DefaultStatPath, cfg.Sources.Stat)
	assert.Equal(t, counters.DefaultPresentPath, cfg.Sources.Present)
	assert.Equal(t, counters.DefaultMeminfoPath, cfg.Sources.Meminfo)
	assert.Equal(t, counters.DefaultNetDevPath, cfg.Sources.NetDev)
	assert.Equal(t, []string{"/"}, cfg.Filesystems)
	assert.False(t, cfg.Network.ExcludeLoopback)
	assert.Empty(t, cfg.Network.Exclude)
	assert.Equal(t, 70, cfg.Thresholds.Warning)
	assert.Equal(t, 90, cfg.Thresholds.Critical)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.False(t, cfg.Output.Plain)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.LogFile)

	assert.NoError(t, Validate(cfg))
}

func TestConfig_Period(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{1, time.Second},
		{4, 250 * time.Millisecond},
		{6, time.Second / 6},
		{0, time.Second / DefaultFPS},
		{-3, time.Second / DefaultFPS},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Refresh.FPS = tt.fps
		assert.Equal(t, tt.want, cfg.Period(), "fps=%d", tt.fps)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sources.Stat = "/tmp/stat"

	p := cfg.Paths()
	assert.Equal(t, "/tmp/stat", p.Stat)
	assert.Equal(t, counters.DefaultNetDevPath, p.NetDev)
}

func TestConfig_InterfaceFilter(t *testing.T) {
	cfg := DefaultConfig()
	f := cfg.InterfaceFilter()
	assert.True(t, f("lo"))
	assert.True(t, f("eth0"))

	cfg.Network.ExcludeLoopback = true
	cfg.Network.Exclude = []string{"docker0"}
	f = cfg.InterfaceFilter()
	assert.False(t, f("lo"))
	assert.False(t, f("docker0"))
	assert.True(t, f("eth0"))
}

func TestLoad(t *testing.T) {
	// Create a temp config file
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
refresh:
  fps: 10
sources:
  stat: /tmp/fixtures/stat
filesystems:
  - /
  - /data
network:
  exclude_loopback: true
  exclude: [docker0, virbr0]
thresholds:
  warning: 60
output:
  color: never
  plain: true
debug: true
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 10, cfg.Refresh.FPS)
	assert.Equal(t, "/tmp/fixtures/stat", cfg.Sources.Stat)
	// Unset keys keep their defaults.
	assert.Equal(t, counters.DefaultMeminfoPath, cfg.Sources.Meminfo)
	assert.Equal(t, []string{"/", "/data"}, cfg.Filesystems)
	assert.True(t, cfg.Network.ExcludeLoopback)
	assert.Equal(t, []string{"docker0", "virbr0"}, cfg.Network.Exclude)
	assert.Equal(t, 60, cfg.Thresholds.Warning)
	assert.Equal(t, 90, cfg.Thresholds.Critical)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.True(t, cfg.Output.Plain)
	assert.True(t, cfg.Debug)
}

func TestLoad_ExpandsPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	content := `
filesystems: ["~/mnt"]
log_file: ${HOME}/hibou.log
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(home, "mnt")}, cfg.Filesystems)
	assert.Equal(t, home+"/hibou.log", cfg.LogFile)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/.hibou.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Config file not found")
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("refresh: [unclosed"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) (string, func())
		explicit string
		wantErr  bool
		wantPath string
	}{
		{
			name: "explicit path exists",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				path := filepath.Join(dir, "custom.yaml")
				err := os.WriteFile(path, []byte("version: 1"), 0644)
				require.NoError(t, err)
				return path, func() {}
			},
			wantErr: false,
		},
		{
			name: "explicit path not found",
			setup: func(t *testing.T) (string, func()) {
				return "/nonexistent/config.yaml", func() {}
			},
			wantErr: true,
		},
		{
			name: "current directory has config",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				path := filepath.Join(dir, ConfigFileName)
				err := os.WriteFile(path, []byte("version: 1"), 0644)
				require.NoError(t, err)

				oldWd, _ := os.Getwd()
				err = os.Chdir(dir)
				require.NoError(t, err)

				return "", func() { os.Chdir(oldWd) }
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explicit, cleanup := tt.setup(t)
			defer cleanup()

			path, err := Find(explicit)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if explicit != "" {
					assert.Equal(t, explicit, path)
				} else {
					assert.NotEmpty(t, path)
				}
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	// Isolate from any real global config.
	t.Setenv("HOME", t.TempDir())

	// Change to a directory without config
	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	err := os.Chdir(dir)
	require.NoError(t, err)
	defer os.Chdir(oldWd)

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Empty(t, path)
	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, DefaultFPS, cfg.Refresh.FPS)
}

func TestLoadOrDefault_Explicit(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "hibou.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("refresh:\n  fps: 2\n"), 0644))

	cfg, path, err := LoadOrDefault(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, path)
	assert.Equal(t, 2, cfg.Refresh.FPS)
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "nested", ConfigFileName)

	cfg := DefaultConfig()
	cfg.Refresh.FPS = 12
	cfg.Filesystems = []string{"/", "/srv"}
	cfg.Network.Exclude = []string{"wg0"}

	require.NoError(t, Write(configPath, cfg, false))

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("version: 1\n"), 0644))

	err := Write(configPath, DefaultConfig(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Write(configPath, DefaultConfig(), true))
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "fps: 6")
	assert.Contains(t, out, "stat: /proc/stat")
	assert.Contains(t, out, "exclude_loopback: false")
	assert.Contains(t, out, "log_file: \"\"")
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", Expand(""))
	assert.Equal(t, "/var/log/x", Expand("/var/log/x"))
	assert.Equal(t, home, Expand("~"))
	assert.Equal(t, filepath.Join(home, "logs"), Expand("~/logs"))
	assert.Equal(t, home+"/logs", Expand("${HOME}/logs"))
	assert.NotContains(t, Expand("/tmp/${USER}"), "${USER}")
	assert.Equal(t, "~other/x", ExpandTilde("~other/x"))
}
