package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/jobtrack/internal/command"
	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/ctxutil"
	"github.com/example/jobtrack/internal/wire"
)

const prompt = ">>> "

// Executor runs decoded commands.
type Executor interface {
	Execute(ctx context.Context, cmd command.Command) error
}

// Shell is the interactive read-parse-execute loop.
type Shell struct {
	exec Executor
	in   io.Reader
	out  io.Writer
}

// NewShell creates a Shell reading commands from in and writing to out.
func NewShell(exec Executor, in io.Reader, out io.Writer) *Shell {
	return &Shell{exec: exec, in: in, out: out}
}

// Run reads commands until quit or end of input.
// Command failures are reported and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	ctx = ctxutil.WithOrigin(ctx, ctxutil.OriginShell)

	fmt.Fprintf(s.out, "%s\n", color.New(color.FgYellow, color.Bold).Sprint(
		"Welcome to jobtrack, type 'help' for commands ('quit' to stop)"))

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, prompt)
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		cmd, err := command.Parse(line)
		if err != nil {
			s.printError(err)
			continue
		}

		if err := s.exec.Execute(ctx, cmd); err != nil {
			s.printError(err)
			continue
		}

		if _, ok := cmd.(command.Quit); ok {
			return nil
		}
	}

	fmt.Fprintln(s.out)
	return scanner.Err()
}

var (
	inputErrColor   = color.New(color.FgYellow)
	failureErrColor = color.New(color.FgRed)
)

// errorColor picks yellow for mistakes in the typed command and red for
// everything else.
func errorColor(err error) *color.Color {
	switch failure.Kind(err) {
	case failure.ErrInvalidArgument, failure.ErrNotFound, failure.ErrDuplicateLink:
		return inputErrColor
	default:
		return failureErrColor
	}
}

func (s *Shell) printError(err error) {
	errorColor(err).Fprintf(s.out, "Error: %v\n", err)
}

// ShellCmd returns the shell command.
func ShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long: `Start the interactive jobtrack shell.

The shell reads one command per line until 'quit' or end of input.
Type 'help' inside the shell for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: RunShell,
	}
}

// RunShell runs the interactive shell on stdin and the command's output.
func RunShell(cmd *cobra.Command, args []string) error {
	shell := NewShell(wire.DispatcherWithOutput(cmd.OutOrStdout()), os.Stdin, cmd.OutOrStdout())
	return shell.Run(cmd.Context())
}
