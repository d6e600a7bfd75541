package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVerifyEmail(t *testing.T) {
	subject, text, html, err := Render("verify_email", map[string]any{
		"Username":   "alice01",
		"VerifyLink": "http://localhost:8001/api/auth/verify?token=abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "Verify Your Smart Hotel Account", subject)
	assert.Contains(t, text, "alice01")
	assert.Contains(t, text, "token=abc")
	assert.Contains(t, html, "token=abc")
}

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render("welcome", map[string]any{"Username": "alice01"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Smart Hotel!", subject)
	assert.Contains(t, text, "alice01")
	assert.Contains(t, html, "alice01")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("password_reset", nil)
	assert.Error(t, err)
}
