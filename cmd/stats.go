package cmd

import (
	"fmt"

	"github.com/bisegni/replay/pkg/document"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file.csv]",
	Short: "Show statistics about a CSV replay file",
	Long: `Display statistics about a CSV replay file: data row count, compiled
column paths, and the leaf types observed per column.

Examples:
  replay stats telemetry.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	filename := args[0]

	r, err := openReplay(filename)
	if err != nil {
		return err
	}
	defer r.Close()

	rows, err := r.Count()
	if err != nil {
		return err
	}

	headers := r.Headers()
	types := make([]map[string]int, len(headers))
	for i := range types {
		types[i] = make(map[string]int)
	}

	if err := r.Play(func(doc document.Document) error {
		for i, path := range headers {
			val, ok := doc.Get(path)
			if !ok {
				types[i]["unset"]++
				continue
			}
			types[i][leafType(val)]++
		}
		return nil
	}, 0); err != nil {
		return err
	}

	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Data rows: %d\n", rows)
	fmt.Printf("Columns: %d\n", len(headers))

	fmt.Printf("\nColumns:\n")
	for i, path := range headers {
		fmt.Printf("  %s:\n", color.CyanString(path.String()))
		for typ, count := range types[i] {
			pct := 0.0
			if rows > 0 {
				pct = float64(count) / float64(rows) * 100
			}
			fmt.Printf("    %s: %d (%.1f%%)\n", typ, count, pct)
		}
	}

	return nil
}

func leafType(v any) string {
	switch v.(type) {
	case float64:
		return "number"
	case string:
		return "string"
	case nil:
		return "null"
	case []any:
		return "sequence"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
