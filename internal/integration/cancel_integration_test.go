//go:build linux || darwin

package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"blastseed/internal/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A FIFO fed without end keeps the scan running until the context ends.
func TestCtrlCMidScanExit130(t *testing.T) {
	dir, q, _ := fixture(t)
	fifo := filepath.Join(dir, "endless.fa")
	require.NoError(t, syscall.Mkfifo(fifo, 0o600))

	done := make(chan struct{})
	defer close(done)
	go func() {
		w, err := os.OpenFile(fifo, os.O_WRONLY, 0)
		if err != nil {
			return
		}
		defer w.Close()
		line := []byte(strings.Repeat("ACGT", 15) + "\n")
		if _, err := w.Write([]byte(">chr1\n")); err != nil {
			return
		}
		for {
			select {
			case <-done:
				return
			default:
			}
			if _, err := w.Write(line); err != nil {
				return
			}
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	code := app.RunContext(ctx, []string{"--query", q, "--strand", "plus", fifo}, io.Discard, io.Discard)
	assert.Equal(t, 130, code)
}
