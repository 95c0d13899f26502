package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/config"
	"github.com/qup1010/moodlistener/internal/logging"
	"github.com/qup1010/moodlistener/internal/repomanager"
	"github.com/qup1010/moodlistener/internal/stats"
	"github.com/qup1010/moodlistener/internal/timex"
)

// errUsage marks a command invoked with malformed arguments.
var errUsage = errors.New("usage")

type App struct {
	config *config.Config
	repos  repomanager.RepositoryManager
	engine *stats.Engine
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
	width  int
}

// NewApp builds an App reading commands from in and writing to out.
func NewApp(c *config.Config, repos repomanager.RepositoryManager, engine *stats.Engine, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		repos:  repos,
		engine: engine,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
		now:    time.Now,
		width:  terminalWidth(out),
	}
}

// Run prints the greeting and blocks in the REPL until the input ends, the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.printf("Welcome to MoodListener (type 'help' for commands)\n")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

func (a *App) getStatus(ctx context.Context) string {
	p, err := a.repos.Settings().GetProfile(ctx)
	if err != nil {
		return ""
	}
	n, err := a.repos.Entries().Count(ctx)
	if err != nil {
		return p.Username
	}
	return fmt.Sprintf("%s, %d entries", p.Username, n)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// fail logs err and prints a message the user can act on. It returns err
// so handlers can end with "return a.fail(...)".
func (a *App) fail(ctx context.Context, cmd string, err error) error {
	switch {
	case errors.Is(err, errUsage):
		a.printf("%s\n", err.Error())
		return err
	case errors.Is(err, common.ErrorValidation):
		a.printf("Invalid input: %s\n", err.Error())
	case errors.Is(err, common.ErrorNotFound):
		a.printf("Not found\n")
	default:
		a.printf("Command %s failed, see log for details\n", cmd)
	}
	a.log.Error(ctx, "command failed", "command", cmd, "error", err)
	return err
}

// usageError carries a message for the user and matches errUsage.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func (e usageError) Is(target error) bool { return target == errUsage }

func usage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func (a *App) today() string {
	return timex.FormatDate(a.now())
}
