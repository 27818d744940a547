package action

import (
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyToClipboard(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("clipboard not available in this environment")
	}

	const text = "build finished in 12s"
	if err := CopyToClipboard(text); err != nil {
		t.Skipf("clipboard not usable: %v", err)
	}

	got, err := clipboard.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestCopyToClipboard_SpecialCharacters(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("clipboard not available in this environment")
	}

	const text = `{"clsid": "{00000000-0000-0000-C000-000000000046}"}`
	if err := CopyToClipboard(text); err != nil {
		t.Skipf("clipboard not usable: %v", err)
	}

	got, err := clipboard.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, text, got)
}
