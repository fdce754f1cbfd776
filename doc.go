// Package treedoc renders arbitrary nested data as a budget-bounded,
// human-readable Markdown document.
//
// The input is a [Value] tree — null, bool, number, string, [Sequence], or
// [Mapping] — with no assumed schema. [Convert] walks it depth-first,
// spending a shrinking byte budget, and returns the rendered text together
// with truncation metadata:
//
//	v, _ := treedoc.DecodeJSON(r)
//	res, err := treedoc.Convert(v, treedoc.Options{})
//	fmt.Print(res.Text)
//
// # Limits
//
// Three ceilings bound every conversion:
//
//   - Options.MaxDepth — subtrees below it become an ellipsis marker
//   - Options.MaxContentSize — hard ceiling on the final document length
//   - Options.TruncateThreshold — advisory; crossing it only records a warning
//
// Hitting a limit is never an error. Oversized subtrees, oversized tables,
// and overlong strings all collapse into markers, and Result.Truncated
// reports that something was cut. Cyclic values render a circular-reference
// marker instead of recursing; a cycle is a structural fact, not truncation.
// The only error [Convert] can return is a precondition violation in the
// options (negative limits, unknown table format), reported as
// [ErrInvalidOptions].
//
// # Layout
//
// Mappings render as per-key headings whose level grows with depth, capped
// at six. A small mapping whose values are all scalars takes the table
// fast-path instead: one table, keys as the header row, values as the sole
// data row, in the style selected by Options.TableFormat ([TableGitHub] or
// [TableSimple]). Sequences of strings and numbers render as flat bullet
// lists; anything else gets numbered item headings.
//
// # Building values
//
// Values come from [DecodeJSON] or [DecodeYAML] (both preserve mapping key
// order), from [FromAny] for data already in memory, or from the
// constructors directly:
//
//	m := treedoc.NewMapping()
//	m.Set("name", treedoc.String("svc-a"))
//	m.Set("replicas", treedoc.Number(3))
//	res, _ := treedoc.Convert(m.Value(), treedoc.Options{OmitMetadata: true})
//
// Conversions share no state: each call builds its own cycle-tracking set
// and threads the budget through the recursion, so concurrent calls are
// safe.
package treedoc
