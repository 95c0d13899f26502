package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a recording stub.
type execIface interface {
	Add(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Day(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Tags(ctx context.Context, args []string) error
	AddTag(ctx context.Context, args []string) error
	DeleteTag(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
	Theme(ctx context.Context, args []string) error
	Dark(ctx context.Context, args []string) error
	Remind(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Avatar(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  add                                 record a new entry
  list [mood] [from] [to] [limit] [offset]
                                      list entries, most recent first ("-" skips a filter)
  show <id>                           show one entry
  day <date|today>                    entries of one day
  search <text>                       find entries by title, content or location
  edit <id>                           change an entry
  delete <id>                         delete an entry
  tags [mood]                         show the tag catalog
  addtag [mood] [name]                add a tag
  deltag <id>                         delete a tag
  settings                            show settings and reminders
  theme <id>                          switch theme
  dark on|off                         toggle dark mode
  remind <HH:MM> [days] | remind off  add a reminder or turn reminders off
  profile                             show the profile
  rename <name>                       change the display name
  avatar <ref>|-                      set or remove the avatar reference
  stats [7|30|90]                     statistics and trend
  exit | quit                         leave the program`

// runREPL reads one command per line from reader and dispatches it to a.
//
// The first token selects the command and the rest are passed as
// arguments. The loop ends on EOF, on "exit" or "quit", or when ctx is
// cancelled. Handler errors are ignored here: handlers report them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("mood (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)
		case "add", "a":
			_ = a.Add(ctx, args)
		case "list", "l":
			_ = a.List(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "day":
			_ = a.Day(ctx, args)
		case "search", "find":
			_ = a.Search(ctx, args)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "tags":
			_ = a.Tags(ctx, args)
		case "addtag":
			_ = a.AddTag(ctx, args)
		case "deltag":
			_ = a.DeleteTag(ctx, args)
		case "settings":
			_ = a.Settings(ctx, args)
		case "theme":
			_ = a.Theme(ctx, args)
		case "dark":
			_ = a.Dark(ctx, args)
		case "remind":
			_ = a.Remind(ctx, args)
		case "profile":
			_ = a.Profile(ctx, args)
		case "rename":
			_ = a.Rename(ctx, args)
		case "avatar":
			_ = a.Avatar(ctx, args)
		case "stats":
			_ = a.Stats(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}
