//go:build !windows

package stderr

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestForward_LogsNonEmptyLines(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	done := make(chan struct{})
	go forward(r, zap.New(core), done)

	_, err = w.WriteString("ALSA lib pcm.c: underrun occurred\n\n   \nsecond line\n")
	require.NoError(t, err)
	w.Close()
	<-done

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
		assert.Equal(t, zapcore.WarnLevel, e.Level)
	}
	assert.Equal(t, []string{"ALSA lib pcm.c: underrun occurred", "second line"}, msgs)
}
