package components

import (
	"testing"

	"github.com/ardevpk/dub/internal/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFooter(t *testing.T) {
	f := Footer("panic@thedis.co")

	require.NotNil(t, f)
	assert.Equal(t, email.KindFragment, f.Kind)
	assert.Len(t, f.FindAll(email.KindHr), 1)

	spans := f.FindAll(email.KindSpan)
	require.Len(t, spans, 1)
	assert.Equal(t, "panic@thedis.co", spans[0].TextContent())
	assert.Contains(t, f.TextContent(), "This email was intended for panic@thedis.co.")
}

func TestHeader(t *testing.T) {
	h := Header()

	imgs := h.FindAll(email.KindImg)
	require.Len(t, imgs, 1)
	assert.Equal(t, Wordmark, imgs[0].Attr("src"))
	assert.Equal(t, "Dub", imgs[0].Attr("alt"))
}
