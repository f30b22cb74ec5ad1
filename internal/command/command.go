// Package command decodes one line of user input into a typed command.
// Handlers downstream switch on the concrete type and never see raw strings.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/core/posting"
	"github.com/example/jobtrack/internal/core/settings"
)

// Command is the closed set of commands understood by jobtrack.
type Command interface {
	command()
}

// ListStaged lists every staged posting ("list .").
type ListStaged struct{}

// ListDurable lists every stored posting ("list main").
type ListDurable struct{}

// Show looks up one stored posting ("list <id>").
type Show struct{ ID int64 }

// ShowStaged looks up one staged posting ("list staged <id>").
type ShowStaged struct{ ID int64 }

// Move promotes a staged posting into the durable store.
type Move struct{ StagingID int64 }

// Update sets the status of a stored posting.
type Update struct {
	ID     int64
	Status posting.Status
}

// Scrape runs a fetch cycle with the current settings.
type Scrape struct{}

// ShowSettings prints the active settings ("settings .").
type ShowSettings struct{}

// SetSetting changes one settings field. Value is validated by the settings service.
type SetSetting struct {
	Field settings.Field
	Value string
}

// Clear empties the staging area.
type Clear struct{}

// Delete removes a stored posting.
type Delete struct{ ID int64 }

// History prints the audit trail of a stored posting.
type History struct{ ID int64 }

// Help prints the command overview.
type Help struct{}

// Quit ends the shell.
type Quit struct{}

func (ListStaged) command()   {}
func (ListDurable) command()  {}
func (Show) command()         {}
func (ShowStaged) command()   {}
func (Move) command()         {}
func (Update) command()       {}
func (Scrape) command()       {}
func (ShowSettings) command() {}
func (SetSetting) command()   {}
func (Clear) command()        {}
func (Delete) command()       {}
func (History) command()      {}
func (Help) command()         {}
func (Quit) command()         {}

// Usage describes one command form for the help output.
type Usage struct {
	Syntax      string
	Description string
}

// Usages lists every command form in help order.
var Usages = []Usage{
	{"list .", "lists all staged postings"},
	{"list main", "lists all stored postings"},
	{"list <id>", "shows one stored posting"},
	{"list staged <id>", "shows one staged posting"},
	{"move <id>", "stores a staged posting"},
	{"update <id> <status>", "updates the status of a stored posting"},
	{"delete <id>", "deletes a stored posting"},
	{"history <id>", "shows the change history of a stored posting"},
	{"scrape", "fetches newly posted jobs into staging"},
	{"clear", "empties the staging area"},
	{"settings .", "shows the search settings"},
	{"settings <field> <value>", "changes one search setting"},
	{"help", "shows this overview"},
	{"quit", "exits the program"},
}

// UsageError reports input that does not form a valid command.
type UsageError struct {
	Reason string
	Usage  string
}

func (e *UsageError) Error() string {
	if e.Usage == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s (usage: '%s')", e.Reason, e.Usage)
}

// Unwrap lets callers match usage errors as invalid arguments.
func (e *UsageError) Unwrap() error {
	return failure.ErrInvalidArgument
}

func usageErr(usage, format string, args ...any) error {
	return &UsageError{Reason: fmt.Sprintf(format, args...), Usage: usage}
}

// Parse decodes a line of input. Command names are case-insensitive.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, usageErr("", "empty command")
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch name {
	case "list":
		return parseList(args)
	case "move":
		id, err := singleID(args, "move <id>")
		if err != nil {
			return nil, err
		}
		return Move{StagingID: id}, nil
	case "update":
		return parseUpdate(args)
	case "delete":
		id, err := singleID(args, "delete <id>")
		if err != nil {
			return nil, err
		}
		return Delete{ID: id}, nil
	case "history":
		id, err := singleID(args, "history <id>")
		if err != nil {
			return nil, err
		}
		return History{ID: id}, nil
	case "scrape":
		return noArgs(args, "scrape", Scrape{})
	case "clear":
		return noArgs(args, "clear", Clear{})
	case "settings":
		return parseSettings(args)
	case "help":
		return Help{}, nil
	case "quit", "exit":
		return Quit{}, nil
	default:
		return nil, usageErr("help", "unknown command %q", fields[0])
	}
}

func parseList(args []string) (Command, error) {
	const usage = "list . | list main | list <id> | list staged <id>"
	switch {
	case len(args) == 1 && args[0] == ".":
		return ListStaged{}, nil
	case len(args) == 1 && strings.EqualFold(args[0], "main"):
		return ListDurable{}, nil
	case len(args) == 1:
		id, err := ParseID(args[0])
		if err != nil {
			return nil, usageErr(usage, "%v", err)
		}
		return Show{ID: id}, nil
	case len(args) == 2 && strings.EqualFold(args[0], "staged"):
		id, err := ParseID(args[1])
		if err != nil {
			return nil, usageErr(usage, "%v", err)
		}
		return ShowStaged{ID: id}, nil
	default:
		return nil, usageErr(usage, "list expects a target")
	}
}

func parseUpdate(args []string) (Command, error) {
	const usage = "update <id> <status>"
	if len(args) != 2 {
		return nil, usageErr(usage, "update expects an id and a status")
	}
	id, err := ParseID(args[0])
	if err != nil {
		return nil, usageErr(usage, "%v", err)
	}
	status, err := posting.ParseStatus(args[1])
	if err != nil {
		return nil, usageErr(usage, "unknown status %q (valid: %s)", args[1], posting.StatusList())
	}
	return Update{ID: id, Status: status}, nil
}

func parseSettings(args []string) (Command, error) {
	const usage = "settings . | settings <field> <value>"
	if len(args) == 1 && args[0] == "." {
		return ShowSettings{}, nil
	}
	if len(args) < 2 {
		return nil, usageErr(usage, "settings expects '.' or a field and a value")
	}
	field, err := settings.ParseField(args[0])
	if err != nil {
		return nil, usageErr(usage, "unknown setting %q", args[0])
	}
	// search terms may contain spaces
	return SetSetting{Field: field, Value: strings.Join(args[1:], " ")}, nil
}

func singleID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, usageErr(usage, "expected exactly one id")
	}
	id, err := ParseID(args[0])
	if err != nil {
		return 0, usageErr(usage, "%v", err)
	}
	return id, nil
}

func noArgs(args []string, usage string, cmd Command) (Command, error) {
	if len(args) != 0 {
		return nil, usageErr(usage, "%s takes no arguments", usage)
	}
	return cmd, nil
}

// ParseID converts user input to a positive id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}
