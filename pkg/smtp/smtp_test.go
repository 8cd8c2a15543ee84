package smtp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestGenerateMessageID(t *testing.T) {
	id := generateMessageID("qr-studio.app")
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@qr-studio.app>"))
	assert.NotEqual(t, id, generateMessageID("qr-studio.app"))
}

func TestMessageHeaders(t *testing.T) {
	c := NewClient(gomail.NewDialer("localhost", 25, "", ""), Config{From: "bot@qr-studio.app", Domain: "qr-studio.app"})
	msg := c.message("user@example.com", "Your code", "attached")

	assert.Equal(t, []string{"bot@qr-studio.app"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"user@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your code"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "attached")
}
