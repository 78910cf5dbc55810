package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bisegni/replay/pkg/document"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var (
	convertTo     string
	convertPretty bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file.csv]",
	Short: "Convert a CSV file to JSON, JSONL, or YAML",
	Long: `Convert every data row of a CSV file into nested documents and dump
them in the requested format.
Examples:
  replay convert telemetry.csv --to json
  replay convert telemetry.csv --to jsonl
  replay convert telemetry.csv --to yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "jsonl", "Target format (json, jsonl, or yaml)")
	convertCmd.Flags().BoolVar(&convertPretty, "pretty", false, "Pretty print output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	r, err := openReplay(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	var docs []document.Document
	if err := r.Play(func(doc document.Document) error {
		docs = append(docs, doc)
		return nil
	}, 0); err != nil {
		return err
	}

	switch strings.ToLower(convertTo) {
	case "jsonl":
		encoder := json.NewEncoder(os.Stdout)
		if convertPretty {
			encoder.SetIndent("", "  ")
		}
		for _, doc := range docs {
			if err := encoder.Encode(document.Ordered(doc, r.Headers())); err != nil {
				return err
			}
		}
		return nil
	case "json":
		ordered := make([]document.OrderedMap, 0, len(docs))
		for _, doc := range docs {
			ordered = append(ordered, document.Ordered(doc, r.Headers()))
		}
		encoder := json.NewEncoder(os.Stdout)
		if convertPretty {
			encoder.SetIndent("", "  ")
		}
		return encoder.Encode(ordered)
	case "yaml":
		out, err := yaml.Marshal(docs)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	default:
		return fmt.Errorf("unknown target format: %s", convertTo)
	}
}
