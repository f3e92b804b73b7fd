package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSecurity(t *testing.T) {
	t.Parallel()

	a := &Auditor{}

	t.Run("all checks passing scores ten", func(t *testing.T) {
		t.Parallel()

		c := testContext(t, "https://example.com/", `<html><body><img src="https://example.com/a.png"></body></html>`)
		c.Page.Headers["strict-transport-security"] = "max-age=63072000"
		c.Page.Headers["x-content-type-options"] = "nosniff"
		c.Page.Headers["x-frame-options"] = "DENY"

		m := a.scoreSecurity(context.Background(), c)

		assert.Equal(t, 10.0, m.Score)
		assert.Equal(t, "5 of 5 transport-security checks passing.", m.Summary)
		assert.Zero(t, m.Issues.Critical)
		assert.Zero(t, m.Issues.Warning)
	})

	t.Run("plain HTTP scores zero outright", func(t *testing.T) {
		t.Parallel()

		c := testContext(t, "http://example.com/", "<html></html>")
		c.Page.Headers["strict-transport-security"] = "max-age=63072000"

		m := a.scoreSecurity(context.Background(), c)

		assert.Zero(t, m.Score)
		assert.Equal(t, 1, m.Issues.Critical)
		assert.Equal(t, "Not served over HTTPS.", m.Summary)

		details, ok := m.Details.(SecurityDetails)
		require.True(t, ok)
		assert.False(t, details.HTTPS)
	})

	t.Run("missing headers cost two points each", func(t *testing.T) {
		t.Parallel()

		c := testContext(t, "https://example.com/", "<html></html>")
		c.Page.Headers["x-content-type-options"] = "nosniff"

		m := a.scoreSecurity(context.Background(), c)

		// HSTS and frame protection missing; content type, nosniff and
		// mixed content pass.
		assert.Equal(t, 6.0, m.Score)
		assert.Equal(t, 2, m.Issues.Warning)
	})

	t.Run("CSP frame-ancestors counts as frame protection", func(t *testing.T) {
		t.Parallel()

		c := testContext(t, "https://example.com/", "<html></html>")
		c.Page.Headers["content-security-policy"] = "default-src 'self'; frame-ancestors 'none'"

		m := a.scoreSecurity(context.Background(), c)

		details, ok := m.Details.(SecurityDetails)
		require.True(t, ok)
		assert.True(t, details.FrameProtection)
	})

	t.Run("mixed content is counted and penalized", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<img src="http://cdn.example.com/a.png">
			<script src="http://cdn.example.com/app.js"></script>
			<img src="https://cdn.example.com/ok.png">
		</body></html>`
		c := testContext(t, "https://example.com/", html)
		c.Page.Headers["strict-transport-security"] = "max-age=300"
		c.Page.Headers["x-content-type-options"] = "nosniff"
		c.Page.Headers["x-frame-options"] = "SAMEORIGIN"

		m := a.scoreSecurity(context.Background(), c)

		details, ok := m.Details.(SecurityDetails)
		require.True(t, ok)
		assert.Equal(t, 2, details.MixedContentCount)
		assert.Equal(t, 8.0, m.Score)
	})
}
