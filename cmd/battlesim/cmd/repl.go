package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/turnforge/battlesim/battle"
)

var replCmd = &cobra.Command{
	Use:   "repl <army-file.json>",
	Short: "Step through a battle interactively, with undo",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl loads a battle and drives it from interactive commands,
// grounded on the original headless CLI's readline-backed command loop
// (cmd/repl), adapted from move/attack/endturn verbs to this engine's
// single step()/Undo() driver.
func runRepl(cmd *cobra.Command, args []string) error {
	b, err := newBattleFromFile(args[0], nil)
	if err != nil {
		return err
	}

	rl, err := readline.New("battlesim> ")
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	fmt.Println("battlesim REPL - type 'help' for commands, 'quit' to exit")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println("\ngoodbye")
				return nil
			}
			return err
		}

		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			fmt.Println("goodbye")
			return nil
		case "help":
			printReplHelp()
		case "status":
			printReplStatus(b)
		case "step":
			n := 1
			if len(fields) > 1 {
				if v, err := strconv.Atoi(fields[1]); err == nil {
					n = v
				}
			}
			for i := 0; i < n; i++ {
				if b.IsOver() {
					break
				}
				b.Step()
				fmt.Println(formatStep(b.Round, i+1, b.LastAction()))
			}
			if b.IsOver() {
				fmt.Println(formatWinner(b.Winner))
			}
		case "undo":
			if b.Undo() {
				fmt.Println("undone")
				printReplStatus(b)
			} else {
				fmt.Println("nothing to undo")
			}
		default:
			fmt.Printf("unknown command %q (try 'help')\n", fields[0])
		}
	}
}

func printReplHelp() {
	fmt.Println("commands:")
	fmt.Println("  step [n]   advance n steps (default 1)")
	fmt.Println("  undo       undo the last step")
	fmt.Println("  status     show round, turn index, and winner")
	fmt.Println("  help       show this help")
	fmt.Println("  quit       exit")
}

func printReplStatus(b *battle.Battle) {
	fmt.Printf("round %d, index %d, %s\n", b.Round, b.CurrentIndex, formatWinner(b.Winner))
}
