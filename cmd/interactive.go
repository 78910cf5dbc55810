package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bisegni/replay/pkg/document"
	"github.com/bisegni/replay/pkg/query"
	"github.com/bisegni/replay/pkg/replay"
	"github.com/chzyer/readline"
)

// RunInteractive steps through a replay file from a readline REPL.
func RunInteractive(filename string) error {
	r, err := openReplay(filename)
	if err != nil {
		return err
	}
	defer r.Close()

	fmt.Printf("Replaying %s. Type 'help' for commands, 'exit' to leave.\n", filename)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "replay> ",
		HistoryFile:     "", // In-memory history for this session
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.EqualFold(trimmed, "exit") || strings.EqualFold(trimmed, "quit") {
			break
		}

		if err := runInteractiveCommand(r, trimmed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	return nil
}

func runInteractiveCommand(r *replay.Replay, input string) error {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "help":
		printInteractiveHelp()
		return nil

	case "next", "n":
		doc, err := r.Advance()
		if err != nil {
			return err
		}
		if doc.IsEmpty() {
			fmt.Println("end of data (use 'reset' or 'loop on')")
			return nil
		}
		return printDoc(r, doc)

	case "reset":
		return r.Reset()

	case "loop":
		switch rest {
		case "on":
			r.SetLoop(true)
		case "off":
			r.SetLoop(false)
		case "":
			fmt.Printf("loop: %v\n", r.IsLoopEnabled())
			return nil
		default:
			return fmt.Errorf("usage: loop [on|off]")
		}
		return nil

	case "count":
		n, err := r.Count()
		if err != nil {
			return err
		}
		fmt.Printf("%d data row(s)\n", n)
		return nil

	case "headers":
		for _, path := range r.Headers() {
			fmt.Println(path)
		}
		return nil

	case "play":
		cycles := 0
		if rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil {
				return fmt.Errorf("usage: play [cycles]")
			}
			cycles = n
		}
		return r.Play(func(doc document.Document) error {
			return printDoc(r, doc)
		}, cycles)

	case "filter":
		if rest == "" {
			return fmt.Errorf("usage: filter <expression>")
		}
		expr, err := query.ParseFilter(rest)
		if err != nil {
			return err
		}
		if err := r.Reset(); err != nil {
			return err
		}
		return r.Play(func(doc document.Document) error {
			if !expr.Evaluate(doc) {
				return nil
			}
			return printDoc(r, doc)
		}, 0)

	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func printDoc(r *replay.Replay, doc document.Document) error {
	encoder := json.NewEncoder(os.Stdout)
	if RootPretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(document.Ordered(doc, r.Headers()))
}

func printInteractiveHelp() {
	fmt.Print(`Commands:
  next, n          read the next data row
  reset            rewind to the first data row
  loop [on|off]    toggle or show loop mode
  count            count data rows (does not move the cursor)
  headers          show the compiled column paths
  play [cycles]    play remaining rows (cycles bounds loop mode)
  filter <expr>    replay from the start, printing matching rows
  exit, quit       leave
`)
}
