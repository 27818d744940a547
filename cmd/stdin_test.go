package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPiped_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	assert.True(t, isPiped(r))
}

func TestIsPiped_RegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("step\n"), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.True(t, isPiped(f))
}

func TestIsPiped_DevNull(t *testing.T) {
	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.False(t, isPiped(f))
}

func TestIsPiped_Nil(t *testing.T) {
	assert.False(t, isPiped(nil))
}

func TestIsPiped_ClosedFile(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_ = w.Close()
	_ = r.Close()

	assert.False(t, isPiped(r))
}
