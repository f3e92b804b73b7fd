package goquery_test

import (
	"context"
	"testing"

	"github.com/mkowalczyk/siteaudit/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaService_Validate(t *testing.T) {
	t.Parallel()

	svc := goquery.NewSchemaService()

	t.Run("detects JSON-LD types", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<script type="application/ld+json">{"@context":"https://schema.org","@type":"Organization","name":"Acme"}</script>
			<script type="application/ld+json">{"@type":"WebSite"}</script>
		</head></html>`

		report, err := svc.Validate(context.Background(), html)
		require.NoError(t, err)
		assert.Equal(t, []string{"Organization", "WebSite"}, report.Types)
		assert.Zero(t, report.Failures)
		assert.Zero(t, report.Warnings)
	})

	t.Run("descends into @graph containers", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{
			"@context": "https://schema.org",
			"@graph": [
				{"@type": "Organization"},
				{"@type": "WebPage"},
				{"@type": ["Article", "NewsArticle"]}
			]
		}</script>`

		report, err := svc.Validate(context.Background(), html)
		require.NoError(t, err)
		assert.Equal(t, []string{"Organization", "WebPage", "Article", "NewsArticle"}, report.Types)
	})

	t.Run("counts unparseable blocks as failures", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"@type": "Product",}</script>
			<script type="application/ld+json">{"@type": "FAQPage"}</script>`

		report, err := svc.Validate(context.Background(), html)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Failures)
		assert.Equal(t, []string{"FAQPage"}, report.Types)
	})

	t.Run("counts typeless entities as warnings", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"name": "no type here"}</script>`

		report, err := svc.Validate(context.Background(), html)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Warnings)
		assert.Empty(t, report.Types)
	})

	t.Run("detects microdata itemtype", func(t *testing.T) {
		t.Parallel()

		html := `<div itemscope itemtype="https://schema.org/BreadcrumbList"><span>Home</span></div>`

		report, err := svc.Validate(context.Background(), html)
		require.NoError(t, err)
		assert.Equal(t, []string{"BreadcrumbList"}, report.Types)
		assert.True(t, report.HasType("BreadcrumbList"))
	})

	t.Run("deduplicates types across sources", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"@type": "Organization"}</script>
			<div itemtype="https://schema.org/Organization"></div>`

		report, err := svc.Validate(context.Background(), html)
		require.NoError(t, err)
		assert.Equal(t, []string{"Organization"}, report.Types)
	})

	t.Run("empty page yields empty report", func(t *testing.T) {
		t.Parallel()

		report, err := svc.Validate(context.Background(), "<html><body></body></html>")
		require.NoError(t, err)
		assert.Empty(t, report.Types)
		assert.False(t, report.HasType("Organization"))
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Validate(ctx, "<html></html>")
		assert.Error(t, err)
	})
}
