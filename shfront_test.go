package shfront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shfront "mvdan.cc/sh-frontend"
	"mvdan.cc/sh-frontend/config"
)

func TestParseSourceEmptyInput(t *testing.T) {
	top, report := shfront.ParseSource(nil, config.Default())
	require.NotNil(t, top)
	assert.Empty(t, top.Items)
	assert.False(t, report.HasErrors())
}

func TestParseSourceSimplePipeline(t *testing.T) {
	top, report := shfront.ParseSource([]byte("cat file | grep pattern"), config.Default())
	require.NotNil(t, top)
	assert.False(t, report.HasErrors())
	assert.Empty(t, report.Combined())
}

func TestParseSourceCollectsBreakWarning(t *testing.T) {
	_, report := shfront.ParseSource([]byte("break"), config.Default())
	require.NotNil(t, report.Validation)
	assert.NotEmpty(t, report.Validation.GetWarnings())
}

func TestParseSourceUnclosedQuoteReportsLexError(t *testing.T) {
	_, report := shfront.ParseSource([]byte("echo 'unterminated"), config.Default())
	assert.True(t, report.HasErrors())
}

func TestTokenizeThenParseMatchesParseSource(t *testing.T) {
	cfg := config.Default()
	src := []byte("echo hi")

	toks, heredocs, lexReport := shfront.Tokenize(src, cfg)
	assert.Empty(t, lexReport.Diagnostics)
	top, parseReport := shfront.Parse(toks, heredocs, cfg)
	assert.Empty(t, parseReport.Diagnostics)
	require.Len(t, top.Items, 1)

	top2, report2 := shfront.ParseSource(src, cfg)
	assert.Equal(t, len(top.Items), len(top2.Items))
	assert.False(t, report2.HasErrors())
}

func TestValidateRespectsDisabledToggles(t *testing.T) {
	cfg := config.Default()
	cfg.EnableValidation = false
	top, _ := shfront.ParseSource([]byte("break"), cfg)
	rpt := shfront.Validate(top, cfg, nil)
	assert.Empty(t, rpt.Issues)
}
