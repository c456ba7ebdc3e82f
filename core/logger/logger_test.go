package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		level   string
		wantErr bool
	}{
		{name: "Debug console", cfg: Config{Level: "debug", Format: "console"}, level: "debug"},
		{name: "Info json", cfg: Config{Level: "info", Format: "json"}, level: "info"},
		{name: "Warn", cfg: Config{Level: "warn", Format: "console"}, level: "warn"},
		{name: "Empty level defaults to info", cfg: Config{}, level: "info"},
		{name: "Invalid level", cfg: Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.level, l.Level().String())
		})
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	l, err := New(&Config{Level: "warn", Format: "json"})
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.ErrorLevel))
}
