package signals

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopFlagIdempotent(t *testing.T) {
	var flag StopFlag
	assert.False(t, flag.IsSet())

	flag.Set()
	assert.True(t, flag.IsSet())

	flag.Set()
	assert.True(t, flag.IsSet())
}

func TestNotifyTermination(t *testing.T) {
	var flag StopFlag
	NotifyTermination(&flag)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	deadline := time.After(500 * time.Millisecond)
	for !flag.IsSet() {
		select {
		case <-deadline:
			t.Fatal("stop flag was not raised after SIGTERM")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
