package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

// sendShutdown connects to the server and issues a SHUTDOWN command.
func sendShutdown(t *testing.T, port int) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("*1\r\n$8\r\nSHUTDOWN\r\n"))
	require.NoError(t, err)
	reply, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "+OK\r\n", reply)
}

func TestRunHelp(t *testing.T) {
	chdir(t, t.TempDir())
	assert.Equal(t, 0, run([]string{"--help"}))
}

func TestRunGenerateDoc(t *testing.T) {
	chdir(t, t.TempDir())
	assert.Equal(t, 0, run([]string{"--generate-doc"}))
}

func TestRunMissingMandatory(t *testing.T) {
	chdir(t, t.TempDir())
	assert.Equal(t, 1, run(nil))
}

func TestRunForegroundStartAndShutdown(t *testing.T) {
	chdir(t, t.TempDir())
	port := freePort(t)
	dbPath := filepath.Join(t.TempDir(), "db")

	done := make(chan int, 1)
	go func() {
		done <- run([]string{
			"--db.path", dbPath,
			"--foreground",
			"--server.port", fmt.Sprintf("%d", port),
		})
	}()

	// Wait for the listener to come up, then ask the server to stop
	// through its own administrative command.
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), 100*time.Millisecond)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 10*time.Second, 50*time.Millisecond)

	sendShutdown(t, port)

	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after SHUTDOWN")
	}
}

func TestRunInvalidEnum(t *testing.T) {
	chdir(t, t.TempDir())
	assert.Equal(t, 1, run([]string{
		"--db.path", t.TempDir(),
		"--storage.compression-algorithm", "zstd",
	}))
}
