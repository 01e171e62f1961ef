package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		validate func(*testing.T, Config)
		wantErr  bool
	}{
		{
			name: "MissingFile_Defaults",
			validate: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "PartialOverride",
			content: `
storage: ring
history_size: 200
redraw_interval: 250ms
window:
  span: 20
axes:
  y_max:
    manual: true
    value: 42
`,
			validate: func(t *testing.T, cfg Config) {
				assert.Equal(t, "ring", cfg.Storage)
				assert.Equal(t, 200, cfg.HistorySize)
				assert.Equal(t, 250*time.Millisecond, cfg.Redraw)
				assert.Equal(t, PollInterval, cfg.Poll)
				assert.Equal(t, 20, cfg.Window.Span)
				assert.Equal(t, YLookback, cfg.Window.YLookback)
				assert.True(t, cfg.Axes.YMax.Manual)
				assert.Equal(t, 42.0, cfg.Axes.YMax.Value)
				assert.False(t, cfg.Axes.XMax.Manual)
				assert.Equal(t, 50.0, cfg.Axes.XMax.Value)
			},
		},
		{
			name:    "BadStorage",
			content: "storage: tape\n",
			wantErr: true,
		},
		{
			name:    "BadYAML",
			content: "storage: [\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	ring := Default()
	ring.Storage = "ring"
	ring.HistorySize = 0
	assert.Error(t, ring.Validate())

	noBaud := Default()
	noBaud.Serial.Baud = 0
	assert.Error(t, noBaud.Validate())

	noSpan := Default()
	noSpan.Window.Span = 0
	assert.Error(t, noSpan.Validate())
}
