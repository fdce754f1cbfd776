package treedoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported table format")
	ErrInvalidOptions    = errors.New("invalid options")
	ErrCyclicValue       = errors.New("cyclic value")
)

// TableFormat selects the rendering style for the table fast-path.
type TableFormat string

const (
	TableSimple TableFormat = "simple"
	TableGitHub TableFormat = "github"
)

var tableFormats = []TableFormat{TableSimple, TableGitHub}

// String returns the format name.
func (f TableFormat) String() string { return string(f) }

// TableFormats returns all supported table format names.
func TableFormats() []TableFormat {
	out := make([]TableFormat, len(tableFormats))
	copy(out, tableFormats)
	return out
}

// ParseTableFormat parses a table format string, e.g. from a CLI flag.
func ParseTableFormat(s string) (TableFormat, error) {
	for _, f := range tableFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Defaults applied by [Options] normalization.
const (
	DefaultMaxDepth          = 5
	DefaultMaxContentSize    = 500_000
	DefaultTruncateThreshold = 400_000
)

// Options configures a conversion. The zero value means: header included,
// depth 5, content ceiling 500k, warning threshold 400k, GitHub tables.
type Options struct {
	// OmitMetadata suppresses the generated document header.
	OmitMetadata bool

	// MaxDepth is the recursion ceiling. Subtrees below it are replaced by
	// an ellipsis marker. Zero means DefaultMaxDepth.
	MaxDepth int

	// MaxContentSize is the hard ceiling, in bytes, on the final document.
	// Zero means DefaultMaxContentSize.
	MaxContentSize int

	// TruncateThreshold is the advisory size above which a warning is
	// recorded. Crossing it does not by itself truncate anything.
	// Zero means DefaultTruncateThreshold.
	TruncateThreshold int

	// TableFormat selects the table fast-path style. Empty means TableGitHub.
	TableFormat TableFormat
}

func (o Options) withDefaults() Options {
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxContentSize == 0 {
		o.MaxContentSize = DefaultMaxContentSize
	}
	if o.TruncateThreshold == 0 {
		o.TruncateThreshold = DefaultTruncateThreshold
	}
	if o.TableFormat == "" {
		o.TableFormat = TableGitHub
	}
	return o
}

// validate rejects contract violations after defaults have been applied.
// Rendering itself never fails; bad options are the caller's bug and are
// reported at the boundary instead of being papered over.
func (o Options) validate() error {
	if o.MaxDepth < 0 {
		return fmt.Errorf("%w: MaxDepth %d is negative", ErrInvalidOptions, o.MaxDepth)
	}
	if o.MaxContentSize < 0 {
		return fmt.Errorf("%w: MaxContentSize %d is negative", ErrInvalidOptions, o.MaxContentSize)
	}
	if o.TruncateThreshold < 0 {
		return fmt.Errorf("%w: TruncateThreshold %d is negative", ErrInvalidOptions, o.TruncateThreshold)
	}
	if _, err := ParseTableFormat(string(o.TableFormat)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// Result is the outcome of a conversion.
type Result struct {
	// Text is the rendered document. Its length never exceeds
	// Options.MaxContentSize.
	Text string

	// Truncated reports whether any content was omitted, either during the
	// recursive pass (depth or budget) or by the final size cut.
	Truncated bool

	// EstimatedSize is the advisory up-front estimate of the rendered size.
	EstimatedSize int

	// FinalSize is len(Text).
	FinalSize int

	// Warnings holds human-readable notes, e.g. when the estimate crosses
	// the truncate threshold.
	Warnings []string
}

// Convert renders a value tree as a hierarchical Markdown document, bounded
// by the options' depth and size ceilings. It never fails on well-formed
// values, cyclic ones included; the only error source is option validation.
func Convert(v Value, opts Options) (Result, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	c := &converter{
		opts:    opts,
		now:     time.Now,
		visited: make(map[any]struct{}),
	}
	return c.convert(v), nil
}

// Write renders the value and writes the document text to w.
func Write(w io.Writer, v Value, opts Options) error {
	res, err := Convert(v, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, res.Text)
	return err
}

// Marshal renders the value and returns the document bytes.
func Marshal(v Value, opts Options) ([]byte, error) {
	res, err := Convert(v, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(res.Text)
	return buf.Bytes(), nil
}

// converter carries the per-call state of one conversion. Each call builds
// its own, so concurrent conversions never share the visited set.
type converter struct {
	opts    Options
	now     func() time.Time
	visited map[any]struct{}
}

func (c *converter) convert(v Value) Result {
	estimated := estimateSize(v)

	var warnings []string
	if estimated > c.opts.TruncateThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"estimated size %d exceeds threshold %d; output may be truncated",
			estimated, c.opts.TruncateThreshold))
	}

	// The header is emitted before budget tracking begins and is not
	// charged against it; the hard ceiling below still bounds the total.
	text := c.header(v)

	body, truncated, _ := c.render(v, 0, c.opts.MaxContentSize)
	text += body

	// Truncation is the OR of "the recursive pass cut something" and "the
	// assembled text still exceeds the ceiling". Either way the document
	// ends with the standard notice and fits MaxContentSize.
	if len(text) > c.opts.MaxContentSize {
		truncated = true
	}
	if truncated {
		text = truncateAtBoundary(text, c.opts.MaxContentSize)
	}

	return Result{
		Text:          text,
		Truncated:     truncated,
		EstimatedSize: estimated,
		FinalSize:     len(text),
		Warnings:      warnings,
	}
}

// headerKeyPreview caps how many top-level key names the header lists.
const headerKeyPreview = 5

// header emits the document preamble, or "" when metadata is suppressed.
func (c *converter) header(v Value) string {
	if c.opts.OmitMetadata {
		return ""
	}
	var b strings.Builder
	b.WriteString("# Document\n\n")
	b.WriteString(fmt.Sprintf("*Generated: %s*\n\n", c.now().Format("January 2, 2006 at 15:04:05")))
	if v.Kind() == KindMapping {
		keys := v.Mapping().Keys()
		preview := keys
		suffix := ""
		if len(preview) > headerKeyPreview {
			preview = preview[:headerKeyPreview]
			suffix = ", ..."
		}
		b.WriteString(fmt.Sprintf("**Top-level keys (%d):** %s%s\n\n",
			len(keys), strings.Join(preview, ", "), suffix))
	}
	return b.String()
}
