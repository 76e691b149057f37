package figma

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
)

func TestParseReference_FileURL(t *testing.T) {
	ref, err := ParseReference("https://www.figma.com/file/ABC123/My-Design")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", ref.FileKey)
	assert.Empty(t, ref.NodeID)
}

func TestParseReference_DesignURL(t *testing.T) {
	ref, err := ParseReference("https://figma.com/design/xYz789/Landing-Page")
	require.NoError(t, err)
	assert.Equal(t, "xYz789", ref.FileKey)
}

func TestParseReference_NodeID(t *testing.T) {
	t.Run("percent-encoded colon", func(t *testing.T) {
		ref, err := ParseReference("https://www.figma.com/file/ABC123/My-Design?node-id=1%3A23")
		require.NoError(t, err)
		assert.Equal(t, "1:23", ref.NodeID)
		assert.Equal(t, "1:23", ref.RawNodeID)
	})

	t.Run("hyphen convention normalized back to colon", func(t *testing.T) {
		ref, err := ParseReference("https://www.figma.com/design/ABC123/My-Design?node-id=1-23")
		require.NoError(t, err)
		assert.Equal(t, "1:23", ref.NodeID)
		assert.Equal(t, "1-23", ref.RawNodeID)
	})
}

func TestParseReference_Invalid(t *testing.T) {
	for _, url := range []string{"not-a-figma-url", "", "https://example.com/file/ABC123"} {
		_, err := ParseReference(url)
		assert.True(t, errors.Is(err, domain.ErrInvalidReference), "url %q should not parse", url)
	}
}

func TestParseReference_Idempotent(t *testing.T) {
	original := "https://www.figma.com/file/ABC123/My-Design?node-id=1-23"
	first, err := ParseReference(original)
	require.NoError(t, err)

	reconstructed := fmt.Sprintf("https://www.figma.com/file/%s/My-Design?node-id=%s", first.FileKey, first.RawNodeID)
	second, err := ParseReference(reconstructed)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidReferenceURL(t *testing.T) {
	assert.True(t, ValidReferenceURL("https://www.figma.com/file/ABC123/x"))
	assert.False(t, ValidReferenceURL("https://example.com/nope"))
}
