package audit

import (
	"context"
	"testing"

	"github.com/mkowalczyk/siteaudit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModules_Registry(t *testing.T) {
	t.Parallel()

	a := &Auditor{}
	entries := a.modules()

	require.Len(t, entries, len(siteaudit.ModuleDefinitions()))
	for i, def := range siteaudit.ModuleDefinitions() {
		assert.Equal(t, def.Key, entries[i].def.Key)
		assert.NotNil(t, entries[i].fn, "module %s has no scorer", def.Key)
	}
}

func TestRunModule_PanicIsolation(t *testing.T) {
	t.Parallel()

	entry := moduleEntry{
		def: definition(siteaudit.ModuleSchema),
		fn: func(ctx context.Context, c *Context) *siteaudit.ModuleResult {
			panic("boom")
		},
	}

	result := runModule(context.Background(), nil, entry)

	require.NotNil(t, result)
	assert.Equal(t, siteaudit.ModuleSchema, result.Key)
	assert.Equal(t, "internal_error: boom", result.Summary)
	assert.Zero(t, result.Score)
	assert.Equal(t, 1, result.Issues.Critical)
}

func TestNote(t *testing.T) {
	t.Parallel()

	m := newResult(definition(siteaudit.ModuleSEOBasics))
	note(m, sevCritical, "add a title")
	note(m, sevWarning, "shorten the description")
	note(m, sevInfo, "consider a canonical link")

	assert.Equal(t, 1, m.Issues.Critical)
	assert.Equal(t, 1, m.Issues.Warning)
	assert.Equal(t, 1, m.Issues.Info)
	assert.Equal(t, []string{
		"add a title",
		"shorten the description",
		"consider a canonical link",
	}, m.Recommendations)
}

func TestFinalize(t *testing.T) {
	t.Parallel()

	m := &siteaudit.ModuleResult{}
	finalize(m, 7.456)
	assert.Equal(t, 7.46, m.Score)

	finalize(m, -2)
	assert.Zero(t, m.Score)

	finalize(m, 12.5)
	assert.Equal(t, 10.0, m.Score)
}
