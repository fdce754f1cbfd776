package treedoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed marker text emitted in place of content.
const (
	ellipsisMarker      = "..."
	circularMarker      = "*(circular reference)*"
	nullMarker          = "*null*"
	emptyMappingMarker  = "*(empty)*"
	emptySequenceMarker = "*(empty list)*"
	tableOmittedMarker  = "*(table omitted: too large)*"
	moreContentNotice   = "*... more content omitted*\n"
)

// Table fast-path bounds: a mapping with TableFastPathMin..TableFastPathMax
// entries, all scalar, renders as a single table row instead of nested
// headings. The bounds cap the worst-case rendering cost for small leaf
// collections and may be overridden before any conversions run.
var (
	TableFastPathMin = 2
	TableFastPathMax = 10
)

// maxHeadingLevel caps Markdown heading nesting. Depth beyond it keeps
// consuming budget but stops growing the heading prefix.
const maxHeadingLevel = 6

// render walks one value, consuming at most budget bytes. It returns the
// emitted text, whether anything was cut for depth or budget reasons, and
// the byte count charged. Cycle markers are not truncation: hitting one is
// a structural fact about the input, not a limit being enforced.
func (c *converter) render(v Value, depth, budget int) (text string, truncated bool, consumed int) {
	if depth > c.opts.MaxDepth || budget <= 0 {
		return ellipsisMarker, true, len(ellipsisMarker)
	}

	switch v.kind {
	case KindNull:
		return nullMarker, false, len(nullMarker)
	case KindBool:
		s := "*" + strconv.FormatBool(v.b) + "*"
		return s, false, len(s)
	case KindNumber:
		s := "*" + formatNumber(v.num) + "*"
		return s, false, len(s)
	case KindString:
		return renderString(v.str, budget)
	case KindSequence:
		if _, ok := c.visited[v.seq]; ok {
			return circularMarker, false, len(circularMarker)
		}
		c.visited[v.seq] = struct{}{}
		defer delete(c.visited, v.seq)
		return c.renderSequence(v.seq, depth, budget)
	case KindMapping:
		if _, ok := c.visited[v.m]; ok {
			return circularMarker, false, len(circularMarker)
		}
		c.visited[v.m] = struct{}{}
		defer delete(c.visited, v.m)
		return c.renderMapping(v.m, depth, budget)
	default:
		return "", false, 0
	}
}

// renderString emits the string as-is when it fits, otherwise slices it to
// budget-10 bytes plus an ellipsis. The slice lands on a byte offset, not a
// rune boundary; the cut length is part of the documented behavior.
func renderString(s string, budget int) (string, bool, int) {
	if len(s) <= budget {
		return s, false, len(s)
	}
	cut := budget - 10
	if cut < 0 {
		cut = 0
	}
	out := s[:cut] + ellipsisMarker
	return out, true, len(out)
}

func (c *converter) renderMapping(m *Mapping, depth, budget int) (string, bool, int) {
	if m.Len() == 0 {
		return emptyMappingMarker, false, len(emptyMappingMarker)
	}

	if isTableCandidate(m) {
		table := renderTable(m, c.opts.TableFormat)
		if len(table) > budget {
			return tableOmittedMarker, true, len(tableOmittedMarker)
		}
		return table, false, len(table)
	}

	prefix := headingPrefix(depth + 2)
	var b strings.Builder
	consumed := 0
	truncated := false
	for _, key := range m.keys {
		heading := prefix + " " + key + "\n\n"
		if consumed+len(heading) > budget {
			b.WriteString(moreContentNotice)
			truncated = true
			break
		}
		b.WriteString(heading)
		consumed += len(heading)

		childText, childTruncated, childSize := c.render(m.vals[key], depth+1, budget-consumed)
		b.WriteString(childText)
		b.WriteString("\n\n")
		consumed += childSize + 2
		if childTruncated {
			b.WriteString(moreContentNotice)
			truncated = true
			break
		}
	}
	return b.String(), truncated, consumed
}

func (c *converter) renderSequence(seq *Sequence, depth, budget int) (string, bool, int) {
	if seq.Len() == 0 {
		return emptySequenceMarker, false, len(emptySequenceMarker)
	}

	if isScalarList(seq) {
		var b strings.Builder
		consumed := 0
		for i := range seq.items {
			line := "- " + scalarText(seq.items[i]) + "\n"
			if consumed+len(line) > budget {
				b.WriteString(fmt.Sprintf("*... %d more items not shown*\n", seq.Len()-i))
				return b.String(), true, consumed
			}
			b.WriteString(line)
			consumed += len(line)
		}
		return b.String(), false, consumed
	}

	prefix := headingPrefix(depth + 3)
	var b strings.Builder
	consumed := 0
	truncated := false
	for i := range seq.items {
		heading := fmt.Sprintf("%s Item %d\n\n", prefix, i+1)
		if consumed+len(heading) > budget {
			b.WriteString(moreContentNotice)
			truncated = true
			break
		}
		b.WriteString(heading)
		consumed += len(heading)

		childText, childTruncated, childSize := c.render(seq.items[i], depth+1, budget-consumed)
		b.WriteString(childText)
		b.WriteString("\n\n")
		consumed += childSize + 2
		if childTruncated {
			b.WriteString(moreContentNotice)
			truncated = true
			break
		}
	}
	return b.String(), truncated, consumed
}

func headingPrefix(level int) string {
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}
	return strings.Repeat("#", level)
}

// isTableCandidate reports whether the mapping qualifies for the single-row
// table layout: entry count within the fast-path bounds and scalar values
// only.
func isTableCandidate(m *Mapping) bool {
	if m.Len() < TableFastPathMin || m.Len() > TableFastPathMax {
		return false
	}
	for _, v := range m.vals {
		if v.kind == KindSequence || v.kind == KindMapping {
			return false
		}
	}
	return true
}

// isScalarList reports whether every element is a string or number, the
// shape rendered as a flat bullet list.
func isScalarList(seq *Sequence) bool {
	for i := range seq.items {
		k := seq.items[i].kind
		if k != KindString && k != KindNumber {
			return false
		}
	}
	return true
}

// scalarText renders a scalar without inline markup, for bullet lines and
// table cells.
func scalarText(v Value) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindString:
		return v.str
	default:
		return ""
	}
}
