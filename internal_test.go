package treedoc

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStringFits(t *testing.T) {
	t.Parallel()
	text, truncated, consumed := renderString("hello", 10)
	assert.Equal(t, "hello", text)
	assert.False(t, truncated)
	assert.Equal(t, 5, consumed)
}

func TestRenderStringCutLength(t *testing.T) {
	t.Parallel()
	text, truncated, consumed := renderString(strings.Repeat("x", 100), 20)
	// budget-10 payload bytes plus the 3-byte ellipsis.
	assert.Equal(t, strings.Repeat("x", 10)+"...", text)
	assert.True(t, truncated)
	assert.Equal(t, 13, consumed)
}

func TestRenderStringTinyBudget(t *testing.T) {
	t.Parallel()
	text, truncated, _ := renderString("hello world", 5)
	assert.Equal(t, "...", text)
	assert.True(t, truncated)
}

func TestTruncateAtBoundaryAppendsWhenFits(t *testing.T) {
	t.Parallel()
	got := truncateAtBoundary("short", 500)
	assert.Equal(t, "short"+truncationNotice, got)
}

func TestTruncateAtBoundaryCutsAtWordBoundary(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("alpha beta ", 100)
	max := 120
	got := truncateAtBoundary(text, max)
	assert.LessOrEqual(t, len(got), max)
	require.True(t, strings.HasSuffix(got, truncationNotice))
	body := strings.TrimSuffix(got, truncationNotice)
	assert.True(t, strings.HasSuffix(body, "alpha") || strings.HasSuffix(body, "beta"),
		"cut mid-word: %q", body)
}

func TestTruncateAtBoundaryHardCutsSingleWord(t *testing.T) {
	t.Parallel()
	got := truncateAtBoundary(strings.Repeat("a", 200), 100)
	assert.Len(t, got, 100)
	assert.True(t, strings.HasSuffix(got, truncationNotice))
}

func TestTruncateAtBoundaryCeilingBelowNotice(t *testing.T) {
	t.Parallel()
	got := truncateAtBoundary(strings.Repeat("a", 200), 10)
	assert.Len(t, got, 10)
}

func TestEstimateSizePrimaryPath(t *testing.T) {
	t.Parallel()
	m := NewMapping()
	m.Set("a", Number(1))
	// {"a":1} is 7 bytes, inflated by 1.5.
	assert.Equal(t, 10, estimateSize(m.Value()))
}

func TestEstimateSizeCyclicFallback(t *testing.T) {
	t.Parallel()
	m := NewMapping()
	m.Set("self", m.Value())
	// 2 braces + key "self" (4+3) + revisit charge.
	assert.Equal(t, 2+7+revisitCost, estimateSize(m.Value()))
}

func TestCountSizeScalars(t *testing.T) {
	t.Parallel()
	seen := make(map[any]struct{})
	assert.Equal(t, 4, countSize(Null(), seen))
	assert.Equal(t, 4, countSize(Bool(true), seen))
	assert.Equal(t, 5, countSize(Bool(false), seen))
	assert.Equal(t, 3, countSize(Number(3.5), seen))
	assert.Equal(t, 4, countSize(String("ab"), seen))
}

func TestIsTableCandidateBounds(t *testing.T) {
	t.Parallel()

	build := func(n int) *Mapping {
		m := NewMapping()
		for i := 0; i < n; i++ {
			m.Set(string(rune('a'+i)), Number(float64(i)))
		}
		return m
	}

	assert.False(t, isTableCandidate(build(0)))
	assert.False(t, isTableCandidate(build(1)))
	assert.True(t, isTableCandidate(build(2)))
	assert.True(t, isTableCandidate(build(10)))
	assert.False(t, isTableCandidate(build(11)))

	withContainer := build(2)
	withContainer.Set("c", NewSequence().Value())
	assert.False(t, isTableCandidate(withContainer))
}

func TestIsScalarList(t *testing.T) {
	t.Parallel()
	assert.True(t, isScalarList(NewSequence(Number(1), String("x"))))
	assert.False(t, isScalarList(NewSequence(Number(1), Bool(true))))
	assert.False(t, isScalarList(NewSequence(NewMapping().Value())))
}

func TestHeadingPrefixCap(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "##", headingPrefix(2))
	assert.Equal(t, "######", headingPrefix(6))
	assert.Equal(t, "######", headingPrefix(12))
}

func TestHeaderUsesClock(t *testing.T) {
	t.Parallel()
	c := &converter{
		opts:    Options{}.withDefaults(),
		now:     func() time.Time { return time.Date(2024, time.March, 7, 9, 30, 0, 0, time.UTC) },
		visited: make(map[any]struct{}),
	}
	m := NewMapping()
	m.Set("a", Number(1))
	res := c.convert(m.Value())
	assert.Contains(t, res.Text, "*Generated: March 7, 2024 at 09:30:00*")
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1", formatNumber(1))
	assert.Equal(t, "3.14", formatNumber(3.14))
	assert.Equal(t, "-0.5", formatNumber(-0.5))
}

func TestEscapePipes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `a\|b`, escapePipes("a|b"))
}

func TestPadCellWideChars(t *testing.T) {
	t.Parallel()
	// "你" occupies two display columns.
	assert.Equal(t, "你  ", padCell("你", 4))
	assert.Equal(t, "ab", padCell("ab", 1))
}

func TestGitHubTableEscapesPipes(t *testing.T) {
	t.Parallel()
	m := NewMapping()
	m.Set("k", String("a|b"))
	m.Set("v", Number(1))
	got := renderTable(m, TableGitHub)
	assert.Contains(t, got, `a\|b`)
	assert.Equal(t, 3, strings.Count(got, "\n"))
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultMaxDepth, o.MaxDepth)
	assert.Equal(t, DefaultMaxContentSize, o.MaxContentSize)
	assert.Equal(t, DefaultTruncateThreshold, o.TruncateThreshold)
	assert.Equal(t, TableGitHub, o.TableFormat)

	custom := Options{MaxDepth: 2, TableFormat: TableSimple}.withDefaults()
	assert.Equal(t, 2, custom.MaxDepth)
	assert.Equal(t, TableSimple, custom.TableFormat)
}
