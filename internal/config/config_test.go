package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antitower/server/internal/group"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "antitower.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[simulation]
tick_rate = "20ms"
attack_range = 80.0
mask_policy = "asymmetric"

[player]
drain_radius = 200.0

[logging]
format = "json"

[database]
pool_size = 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.Simulation.TickRate)
	assert.Equal(t, 80.0, cfg.Simulation.AttackRange)
	assert.Equal(t, group.Asymmetric, cfg.Policy())
	assert.Equal(t, 200.0, cfg.Player.DrainRadius)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 8, cfg.Database.PoolSize)

	// untouched keys keep their defaults
	assert.Equal(t, 100.0, cfg.Simulation.StartingMana)
	assert.Equal(t, 60.0, cfg.Player.DrainRate)
	assert.Equal(t, "script", cfg.Input.Driver)
	assert.NotZero(t, cfg.Server.StartTime)
	assert.Equal(t, 1, cfg.Database.MinIdle)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"negative attack range": "[simulation]\nattack_range = -1.0\n",
		"zero tick rate":        "[simulation]\ntick_rate = \"0s\"\n",
		"unknown policy":        "[simulation]\nmask_policy = \"sideways\"\n",
		"unknown driver":        "[input]\ndriver = \"joystick\"\n",
		"unknown profile":       "[profile]\nmode = \"block\"\n",
		"negative pool size":    "[database]\npool_size = -2\n",
		"negative min idle":     "[database]\nmin_idle = -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, group.Bidirectional, cfg.Policy())
	assert.Equal(t, time.Second/60, cfg.Simulation.TickRate)
}
