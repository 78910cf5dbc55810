package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bisegni/replay/pkg/document"
	"github.com/bisegni/replay/pkg/keypath"
	"github.com/bisegni/replay/pkg/query"
	"github.com/bisegni/replay/pkg/replay"
	"github.com/spf13/cobra"
)

var (
	RootPretty      bool
	RootLoop        bool
	RootCycles      int
	RootPath        string
	RootStrategy    string
	InteractiveMode bool
)

var rootCmd = &cobra.Command{
	Use:   "replay [file.csv] [filter]",
	Short: "Replay CSV files as a stream of nested documents",
	Long: `replay reads a CSV file whose column headers are structural paths
(driver.name, signal[0], /acceleration/x) and replays each data row as a
nested JSON document on stdout.

Lines starting with '#' (optionally indented with spaces) and blank lines
are skipped anywhere in the file. An optional filter expression selects
which rows are emitted.

Examples:
  replay telemetry.csv
  replay telemetry.csv 'speed > 45 AND driver.name = "John Doe"'
  replay telemetry.csv --path acceleration.x
  replay telemetry.csv --loop --cycles 3
  replay telemetry.csv -i`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		filename := args[0]

		if InteractiveMode {
			return RunInteractive(filename)
		}

		var filter query.Expression
		if len(args) == 2 {
			expr, err := query.ParseFilter(args[1])
			if err != nil {
				return fmt.Errorf("failed to parse filter: %w", err)
			}
			filter = expr
		}

		return RunPlay(filename, filter)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&RootPretty, "pretty", false, "Pretty print output")
	rootCmd.PersistentFlags().StringVar(&RootStrategy, "strategy", "grouped", "Document building strategy (grouped or pointer)")
	rootCmd.Flags().BoolVar(&RootLoop, "loop", false, "Loop back to the first row at end of data")
	rootCmd.Flags().IntVar(&RootCycles, "cycles", 0, "Number of full passes in loop mode (0 = unbounded)")
	rootCmd.Flags().StringVarP(&RootPath, "path", "p", "", "Extract a single path from each document (e.g. acceleration.x)")
	rootCmd.Flags().BoolVarP(&InteractiveMode, "interactive", "i", false, "Interactive REPL mode")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
}

// RunPlay streams every (matching) document to stdout as JSON lines.
func RunPlay(filename string, filter query.Expression) error {
	r, err := openReplay(filename)
	if err != nil {
		return err
	}
	defer r.Close()
	r.SetLoop(RootLoop)

	var extract keypath.Path
	if RootPath != "" && RootPath != "." {
		extract = keypath.Parse(RootPath)
	}

	encoder := json.NewEncoder(os.Stdout)
	if RootPretty {
		encoder.SetIndent("", "  ")
	}

	return r.Play(func(doc document.Document) error {
		if filter != nil && !filter.Evaluate(doc) {
			return nil
		}
		if extract != nil {
			val, ok := doc.Get(extract)
			if !ok {
				return nil
			}
			return encoder.Encode(val)
		}
		return encoder.Encode(document.Ordered(doc, r.Headers()))
	}, RootCycles)
}

// openReplay opens the file and applies the global strategy flag.
func openReplay(filename string) (*replay.Replay, error) {
	r, err := replay.Open(filename)
	if err != nil {
		return nil, err
	}
	if RootStrategy == "pointer" {
		r.SetStrategy(replay.StrategyPointer)
	}
	return r, nil
}
