package cmd

import (
	"fmt"

	"github.com/bisegni/replay/pkg/keypath"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file.csv]",
	Short: "Validate a CSV replay file",
	Long: `Validate that a CSV replay file opens, has a header line, and report
its compiled column paths along with any gaps in array index columns.

Examples:
  replay validate telemetry.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	filename := args[0]

	r, err := openReplay(filename)
	if err != nil {
		fmt.Printf("%s %v\n", color.RedString("✗"), err)
		return err
	}
	defer r.Close()

	rows, err := r.Count()
	if err != nil {
		return err
	}

	headers := r.Headers()
	fmt.Printf("%s %s: %d column(s), %d data row(s)\n", color.GreenString("✓"), filename, len(headers), rows)
	for _, path := range headers {
		fmt.Printf("  %s\n", path)
	}

	for _, gap := range indexGaps(headers) {
		fmt.Printf("%s %s\n", color.YellowString("!"), gap)
	}

	return nil
}

// indexGaps reports, per array base path, the indices missing from
// [0, max]. Gap slots are filled with nulls during playback, which is
// usually a sign of a mislabeled header.
func indexGaps(headers []keypath.Path) []string {
	type arrayInfo struct {
		base    keypath.Path
		present map[int]bool
		max     int
	}

	arrays := make(map[string]*arrayInfo)
	var order []string

	for _, path := range headers {
		at := path.FirstIndex()
		if at <= 0 || at != len(path)-1 {
			continue
		}
		base := path.Base()
		key := base.String()
		info := arrays[key]
		if info == nil {
			info = &arrayInfo{base: base, present: make(map[int]bool)}
			arrays[key] = info
			order = append(order, key)
		}
		idx := path[at].Index
		info.present[idx] = true
		if idx > info.max {
			info.max = idx
		}
	}

	var gaps []string
	for _, key := range order {
		info := arrays[key]
		var missing []int
		for i := 0; i <= info.max; i++ {
			if !info.present[i] {
				missing = append(missing, i)
			}
		}
		if len(missing) > 0 {
			gaps = append(gaps, fmt.Sprintf("array %s is missing index(es) %v, slots will be null", key, missing))
		}
	}
	return gaps
}
