package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/services"
)

var errExitSession = errors.New("exit session")

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Plan once, then inspect sessions and re-run commands without reloading config",
		Long: `Start an interactive session against one loaded configuration.

Any CLI command can be run by name. The result of the last plan, seats or duties
run is kept for the session, so individual exam sessions can be inspected with:

  sessions               List seated and failed sessions of the last plan
  show <date> <slot>     Seat blocks and invigilators of one session

Type 'exit' or 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := newShell(app, cmd.Parent(), os.Stdout)

			fmt.Println("\n🚀 Starting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				if err := shell.execute(scanner.Text()); err != nil {
					if errors.Is(err, errExitSession) {
						fmt.Println("👋 Goodbye!")
						return nil
					}
					fmt.Printf("❌ %v\n\n", err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			return nil
		},
	}
}

// shell dispatches one interactive line to a built-in view or a CLI command
type shell struct {
	app      *AppContext
	commands map[string]*cobra.Command
	out      io.Writer
}

func newShell(app *AppContext, root *cobra.Command, out io.Writer) *shell {
	commands := make(map[string]*cobra.Command)
	if root != nil {
		for _, sub := range root.Commands() {
			switch sub.Name() {
			case "interactive", "completion", "help":
				continue
			}
			commands[sub.Name()] = sub
		}
	}
	return &shell{app: app, commands: commands, out: out}
}

func (s *shell) execute(line string) error {
	parts, err := parseCommandLine(line)
	if err != nil {
		return fmt.Errorf("error parsing command: %w", err)
	}
	if len(parts) == 0 {
		return nil
	}

	name, args := parts[0], parts[1:]
	switch name {
	case "exit", "quit":
		return errExitSession
	case "help":
		s.printHelp()
		return nil
	case "sessions":
		return s.listSessions()
	case "show":
		if len(args) != 2 {
			return fmt.Errorf("usage: show <date> <slot>")
		}
		return s.showSession(model.Session{Date: args[0], Slot: args[1]})
	}

	target, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", name)
	}
	return runSubcommand(target, args)
}

// runSubcommand runs a command's RunE directly so the root's
// PersistentPreRunE does not rebuild the app context
func runSubcommand(cmd *cobra.Command, args []string) error {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})
	if err := cmd.ParseFlags(args); err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	args = cmd.Flags().Args()
	if cmd.Args != nil {
		if err := cmd.Args(cmd, args); err != nil {
			return err
		}
	}

	switch {
	case cmd.RunE != nil:
		return cmd.RunE(cmd, args)
	case cmd.Run != nil:
		cmd.Run(cmd, args)
	}
	return nil
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, "\nAvailable commands:")

	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "  %-30s %s\n", s.commands[name].Use, s.commands[name].Short)
	}

	fmt.Fprintln(s.out, "\n  sessions                       List sessions of the last plan")
	fmt.Fprintln(s.out, "  show <date> <slot>             Show seat blocks and invigilators of one session")
	fmt.Fprintln(s.out, "  help                           Show this help message")
	fmt.Fprintln(s.out, "  exit, quit                     Exit the interactive session")
}

func (s *shell) lastPlan() (*services.PlanResult, error) {
	if s.app.LastPlan == nil {
		return nil, fmt.Errorf("no plan in this session yet: run 'plan', 'seats' or 'duties' first")
	}
	return s.app.LastPlan, nil
}

func (s *shell) listSessions() error {
	result, err := s.lastPlan()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nSessions of run %s:\n", result.RunID)
	for _, plan := range result.Plans {
		blocks := plan.OccupiedBlocks()
		placed := 0
		for _, block := range blocks {
			placed += block.Count
		}
		fmt.Fprintf(s.out, "  ✓ %-24s %d students in %d blocks\n", plan.Session, placed, len(blocks))
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(s.out, "  ✗ %-24s %v\n", failure.Session, failure.Err)
	}
	fmt.Fprintln(s.out)
	return nil
}

// showSession prints one session of the last plan. The date may be written in
// any accepted exam date format.
func (s *shell) showSession(session model.Session) error {
	result, err := s.lastPlan()
	if err != nil {
		return err
	}

	for _, failure := range result.Failures {
		if failure.Session.Slug() == session.Slug() {
			fmt.Fprintf(s.out, "\n❌ %s was not seated: %v\n\n", failure.Session, failure.Err)
			return nil
		}
	}

	for _, plan := range result.Plans {
		if plan.Session.Slug() != session.Slug() {
			continue
		}

		invigilators := make(map[string]string)
		if result.Duties != nil {
			for _, duty := range result.Duties.Duties {
				if duty.Session != plan.Session {
					continue
				}
				faculty := "-"
				if duty.Faculty != "" {
					faculty = result.Duties.State.DisplayName(duty.Faculty)
				}
				invigilators[blockKey(duty.Room, duty.Block)] = fmt.Sprintf("%s (%s)", faculty, duty.Outcome)
			}
		}

		fmt.Fprintf(s.out, "\n📋 %s (%d seats)\n\n", plan.Session, plan.Capacity())
		fmt.Fprintf(s.out, "%-6s %-5s %-8s %-8s %s\n", "Room", "Block", "Course", "Students", "Invigilator")
		for _, block := range plan.OccupiedBlocks() {
			invigilator, ok := invigilators[blockKey(block.Room, block.Block)]
			if !ok {
				invigilator = "duties not planned"
			}
			fmt.Fprintf(s.out, "%-6s %-5s %-8s %-8d %s\n", block.Room, block.Block, block.CourseID, block.Count, invigilator)
		}
		fmt.Fprintln(s.out)
		return nil
	}

	return fmt.Errorf("session %s is not in the last plan", session)
}

func blockKey(room string, block model.BlockLabel) string {
	return room + "/" + string(block)
}

// parseCommandLine splits a command line into arguments. Single or double
// quotes group words, so dates with spaces can be passed to show.
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune

	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", quote)
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args, nil
}
