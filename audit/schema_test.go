package audit

import (
	"context"
	"testing"

	"github.com/mkowalczyk/siteaudit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSchema(t *testing.T) {
	t.Parallel()

	a := &Auditor{}

	t.Run("rich clean markup scores ten", func(t *testing.T) {
		t.Parallel()

		c := testContext(t, "https://example.com/", "<html></html>")
		c.Schema = &siteaudit.SchemaReport{
			Types: []string{"Organization", "WebSite", "Article", "Product", "FAQPage"},
		}

		m := a.scoreSchema(context.Background(), c)

		// +4 presence, +4 important (capped), +2 clean validation.
		assert.Equal(t, 10.0, m.Score)

		details, ok := m.Details.(SchemaDetails)
		require.True(t, ok)
		assert.Len(t, details.ImportantTypes, 5)
	})

	t.Run("validation failures cost the clean bonus", func(t *testing.T) {
		t.Parallel()

		c := testContext(t, "https://example.com/", "<html></html>")
		c.Schema = &siteaudit.SchemaReport{Types: []string{"Organization"}, Failures: 1}

		m := a.scoreSchema(context.Background(), c)

		assert.Equal(t, 5.0, m.Score)
		assert.Equal(t, 1, m.Issues.Warning)
	})

	t.Run("uncommon types earn presence but no important bonus", func(t *testing.T) {
		t.Parallel()

		c := testContext(t, "https://example.com/", "<html></html>")
		c.Schema = &siteaudit.SchemaReport{Types: []string{"Thing"}}

		m := a.scoreSchema(context.Background(), c)

		assert.Equal(t, 6.0, m.Score)
		assert.Equal(t, 1, m.Issues.Info)
	})

	t.Run("no structured data", func(t *testing.T) {
		t.Parallel()

		c := testContext(t, "https://example.com/", "<html></html>")
		c.Schema = &siteaudit.SchemaReport{}

		m := a.scoreSchema(context.Background(), c)

		assert.Equal(t, 2.0, m.Score)
		assert.Equal(t, "No structured data found.", m.Summary)
		assert.Equal(t, 1, m.Issues.Warning)
	})

	t.Run("degraded validator scores what little is known", func(t *testing.T) {
		t.Parallel()

		c := testContext(t, "https://example.com/", "<html></html>")
		c.Schema = nil

		m := a.scoreSchema(context.Background(), c)

		assert.Equal(t, 2.0, m.Score)
		assert.Equal(t, 1, m.Issues.Info)
	})
}
