package media

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURIEmbeddedAssets(t *testing.T) {
	enc := NewEncoder()

	for _, name := range []string{
		"images/avatar_1.png",
		"images/avatar_2.png",
		"images/avatar_3.png",
		"images/avatar_4.png",
		"images/avatar_5.png",
	} {
		t.Run(name, func(t *testing.T) {
			uri, err := enc.DataURI(name)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
			assert.Greater(t, len(uri), len("data:image/jpeg;base64,"))
		})
	}
}

func TestDataURIMissingAsset(t *testing.T) {
	enc := NewEncoderFS(fstest.MapFS{})

	_, err := enc.DataURI("images/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.png")
}
