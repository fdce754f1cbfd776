// Command treedoc renders a JSON or YAML document from a file or stdin as a
// size-bounded Markdown document on stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaus/treedoc"
)

var (
	inputFormat string
	tableFormat string
	maxDepth    int
	maxSize     int
	threshold   int
	noMetadata  bool
	outputPath  string
)

var rootCmd = &cobra.Command{
	Use:   "treedoc [file]",
	Short: "Render JSON or YAML as a size-bounded Markdown document",
	Long: `treedoc converts a JSON or YAML value tree into a hierarchical Markdown
document, subject to a hard output-size ceiling and a traversal-depth
ceiling. When a limit is hit, the affected content is replaced by a
marker instead of failing.

Reads the named file, or stdin when no file is given.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputFormat, "input", "i", "json", "input format: json or yaml")
	rootCmd.Flags().StringVarP(&tableFormat, "table", "t", string(treedoc.TableGitHub), "table style: simple or github")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", treedoc.DefaultMaxDepth, "traversal depth ceiling")
	rootCmd.Flags().IntVar(&maxSize, "max-size", treedoc.DefaultMaxContentSize, "output size ceiling in bytes")
	rootCmd.Flags().IntVar(&threshold, "threshold", treedoc.DefaultTruncateThreshold, "advisory size warning threshold")
	rootCmd.Flags().BoolVar(&noMetadata, "no-metadata", false, "omit the generated document header")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the document to a file instead of stdout")
}

func run(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var (
		value treedoc.Value
		err   error
	)
	switch inputFormat {
	case "json":
		value, err = treedoc.DecodeJSON(in)
	case "yaml", "yml":
		value, err = treedoc.DecodeYAML(in)
	default:
		err = fmt.Errorf("unsupported input format %q (want json or yaml)", inputFormat)
	}
	if err != nil {
		return err
	}

	table, err := treedoc.ParseTableFormat(tableFormat)
	if err != nil {
		return err
	}

	res, err := treedoc.Convert(value, treedoc.Options{
		OmitMetadata:      noMetadata,
		MaxDepth:          maxDepth,
		MaxContentSize:    maxSize,
		TruncateThreshold: threshold,
		TableFormat:       table,
	})
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	if res.Truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: output truncated (%d of ~%d estimated bytes)\n",
			res.FinalSize, res.EstimatedSize)
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, []byte(res.Text), 0o644)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), res.Text)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "treedoc:", err)
		os.Exit(1)
	}
}
