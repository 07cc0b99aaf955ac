package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestIdentityNumbersAreMasked(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("idNumber", "110101200001010011").Warn("duplicate identity number",
		"id_numbers", []string{"123456789012345678", "12"},
		"file", "students.xlsx",
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "110****011", ctx["idNumber"])
	assert.Equal(t, []interface{}{"123****678", "******"}, ctx["id_numbers"])
	assert.Equal(t, "students.xlsx", ctx["file"])
}

func TestOddKeyValuesPassThrough(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.Info("count", "rows", 3)
	require.Len(t, logs.All(), 1)
	assert.EqualValues(t, 3, logs.All()[0].ContextMap()["rows"])
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production", ""} {
		l, err := New(mode)
		require.NoError(t, err)
		l.Debug("hello")
		l.Sync()
	}
	NewNop().Error("discarded")
}
