package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel_NivelesSoportados(t *testing.T) {
	casos := []struct {
		nombre string
		nivel  string
		want   zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"info", "info", zerolog.InfoLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"error", "error", zerolog.ErrorLevel},
		{"desconocido cae a info", "verbose", zerolog.InfoLevel},
		{"vacío cae a info", "", zerolog.InfoLevel},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.want, parseLevel(c.nivel))
		})
	}
}

func TestNew_RedirigeLoggerGlobal(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}
