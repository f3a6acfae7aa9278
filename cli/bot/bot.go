// Package bot reads commands line by line and applies them to an address book.
package bot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/VictoriaMetrics/metrics"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/oaiiae/addressbook/contacts"
	"github.com/oaiiae/addressbook/datastores"
)

// Bot owns an address book loaded from Store. Commands and saves are serialized.
type Bot struct {
	Store   datastores.BooksStore
	Clock   clock.Clock  // defaults to the wall clock
	Logger  *slog.Logger // defaults to [slog.Default]
	Metrics *metrics.Set // defaults to a new set
	In      io.Reader
	Out     io.Writer
	Prompt  string

	mu    sync.Mutex
	book  *contacts.AddressBook
	lines *bufio.Scanner
}

// Open loads the address book. It must be called before Run and Execute.
// Bots sharing a metrics set report the records of the first one opened.
func (b *Bot) Open(ctx context.Context) error {
	if b.Clock == nil {
		b.Clock = clock.New()
	}
	if b.Logger == nil {
		b.Logger = slog.Default()
	}
	if b.Metrics == nil {
		b.Metrics = metrics.NewSet()
	}
	b.Logger = b.Logger.With("session", uuid.NewString())
	b.lines = bufio.NewScanner(b.In)

	book, err := b.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading address book: %w", err)
	}
	b.mu.Lock()
	b.book = book
	b.mu.Unlock()
	b.Metrics.GetOrCreateGauge("addressbook_records", func() float64 { return float64(b.book.Len()) })
	b.Logger.Info("address book loaded", "records", book.Len())
	return nil
}

// Run prompts for commands until a closing command, the end of input or the
// cancellation of ctx. It does not save the book.
func (b *Bot) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		fmt.Fprint(b.Out, b.Prompt)
		line, ok := b.readLine()
		if !ok {
			return b.lines.Err()
		}
		reply, quit := b.Execute(ctx, line)
		fmt.Fprintln(b.Out, reply)
		if quit {
			return nil
		}
	}
	return ctx.Err()
}

// confirm asks question and reports whether the answer is yes.
// It must be called from a command: the lock held by [Bot.Execute] is released
// while waiting so that [Bot.Save] can run meanwhile.
func (b *Bot) confirm(question string) bool {
	fmt.Fprint(b.Out, question)
	b.mu.Unlock()
	answer, ok := b.readLine()
	b.mu.Lock()
	return ok && strings.EqualFold(strings.TrimSpace(answer), "yes")
}

func (b *Bot) readLine() (string, bool) {
	if !b.lines.Scan() {
		return "", false
	}
	return b.lines.Text(), true
}

// Execute runs a single command line and returns the reply,
// and whether the session should end.
func (b *Bot) Execute(ctx context.Context, line string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cmd, args := parse(line)
	reply, err := cmd.handle(b, args)
	status := "ok"
	if err != nil {
		status = "error"
		reply = translate(err)
		b.Logger.LogAttrs(ctx, slog.LevelWarn, "command failed",
			slog.String("command", cmd.name), slog.Any("err", err))
	} else {
		b.Logger.LogAttrs(ctx, slog.LevelDebug, "command executed", slog.String("command", cmd.name))
	}
	b.Metrics.GetOrCreateCounter(fmt.Sprintf(`addressbook_commands_total{command=%q,status=%q}`, cmd.name, status)).Inc()
	return reply, cmd.quit
}

// Save stores the address book. It does nothing if the book was never opened.
func (b *Bot) Save(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.book == nil {
		return nil
	}

	start := b.Clock.Now()
	err := b.Store.Save(ctx, b.book)
	if err != nil {
		return fmt.Errorf("saving address book: %w", err)
	}
	b.Logger.Info("address book saved", "records", b.book.Len(), "dur", b.Clock.Since(start))
	return nil
}

// usageError is the reply to a command given wrong arguments.
type usageError string

func (e usageError) Error() string { return string(e) }

// translate turns an error returned by a command into a reply.
func translate(err error) string {
	var fieldErr *contacts.FieldError
	var usage usageError
	switch {
	case errors.As(err, &usage):
		return string(usage)
	case errors.As(err, &fieldErr):
		switch fieldErr.Field {
		case "phone":
			return fmt.Sprintf("Invalid phone %q. A phone is 7 to 15 digits, e.g. '0501234567'.", fieldErr.Value)
		case "birthday":
			return "Invalid birthday format. Please use the format 'day-month-year', e.g., '26-11-1978'."
		default:
			return "Enter user name"
		}
	default:
		return "Something went wrong: " + err.Error()
	}
}
