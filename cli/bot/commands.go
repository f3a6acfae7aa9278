package bot

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/oaiiae/addressbook/contacts"
)

type command struct {
	name    string
	aliases []string
	usage   string
	quit    bool
	handle  func(*Bot, []string) (string, error)
}

var (
	commands []command
	aliases  []alias // longest first
	unknown  = command{name: "unknown", handle: (*Bot).unknown}
)

type alias struct {
	text string
	cmd  *command
}

func init() {
	commands = []command{
		{name: "hello", aliases: []string{"hello", "hi"}, usage: "hello", handle: (*Bot).hello},
		{name: "add", aliases: []string{"add", "+"}, usage: "add <name> <phone> [DD-MM-YYYY]", handle: (*Bot).add},
		{name: "change", aliases: []string{"change", "зміни"}, usage: "change <name> <old phone> <new phone>", handle: (*Bot).change},
		{name: "birthday", aliases: []string{"birthday"}, usage: "birthday <name> <DD-MM-YYYY>", handle: (*Bot).birthday},
		{name: "get", aliases: []string{"get", "дай"}, usage: "get <name>", handle: (*Bot).get},
		{name: "show_all", aliases: []string{"show all", "покажи все"}, usage: "show all [start_page [end_page]]", handle: (*Bot).showAll},
		{name: "delete", aliases: []string{"del", "delete", "видали"}, usage: "del <name>", handle: (*Bot).del},
		{name: "stats", aliases: []string{"stats"}, usage: "stats", handle: (*Bot).stats},
		{name: "help", aliases: []string{"help", "?"}, usage: "help", handle: (*Bot).help},
		{name: "bye", aliases: []string{"bye", "exit", "end", "close"}, usage: "bye", quit: true, handle: (*Bot).bye},
	}
	for i := range commands {
		for _, text := range commands[i].aliases {
			aliases = append(aliases, alias{text, &commands[i]})
		}
	}
	slices.SortStableFunc(aliases, func(a, b alias) int { return cmp.Compare(len(b.text), len(a.text)) })
}

// parse matches the start of line against the command aliases, ignoring case.
// The remaining words are the arguments.
func parse(line string) (*command, []string) {
	line = strings.TrimSpace(line)
	for _, a := range aliases {
		n := len(a.text)
		if len(line) < n || !strings.EqualFold(line[:n], a.text) {
			continue
		}
		if len(line) > n && line[n] != ' ' && line[n] != '\t' {
			continue
		}
		return a.cmd, strings.Fields(line[n:])
	}
	return &unknown, []string{line}
}

func (b *Bot) unknown(args []string) (string, error) {
	return fmt.Sprintf("Unknown command: %s", args[0]), nil
}

func (b *Bot) hello([]string) (string, error) {
	return "How can I help you?", nil
}

func (b *Bot) help([]string) (string, error) {
	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		lines = append(lines, fmt.Sprintf("%-40s aliases: %s", cmd.usage, strings.Join(cmd.aliases, ", ")))
	}
	return strings.Join(lines, "\n"), nil
}

func (b *Bot) bye([]string) (string, error) {
	return "Good bye!", nil
}

// add creates a contact or adds the phone to an existing one.
// The optional birthday replaces the existing one.
func (b *Bot) add(args []string) (string, error) {
	if len(args) < 2 {
		return "", usageError("Give me name and phone please")
	}
	name, err := contacts.NewName(args[0])
	if err != nil {
		return "", err
	}
	phone, err := contacts.NewPhone(args[1])
	if err != nil {
		return "", err
	}
	var birthday *contacts.Birthday
	if len(args) > 2 {
		bd, err := contacts.NewBirthday(args[2])
		if err != nil {
			return "", err
		}
		birthday = &bd
	}

	record, ok := b.book.Get(name.String())
	if !ok {
		return b.book.AddRecord(contacts.NewRecord(name, []contacts.Phone{phone}, birthday)).Message, nil
	}
	reply := record.AddPhone(phone).Message
	if birthday != nil {
		if err := record.SetBirthday(birthday.String()); err != nil {
			return "", err
		}
		reply += fmt.Sprintf(", birthday set to %s", birthday)
	}
	return reply, nil
}

func (b *Bot) change(args []string) (string, error) {
	if len(args) < 3 {
		return "", usageError("Give me name, old phone and new phone please")
	}
	phone, err := contacts.NewPhone(args[2])
	if err != nil {
		return "", err
	}
	record, ok := b.book.Get(args[0])
	if !ok {
		return fmt.Sprintf("No contact %s in address book", args[0]), nil
	}
	return record.ChangePhone(args[1], phone).Message, nil
}

func (b *Bot) birthday(args []string) (string, error) {
	if len(args) < 2 {
		return "", usageError("Give me name and birthday please")
	}
	record, ok := b.book.Get(args[0])
	if !ok {
		return fmt.Sprintf("No contact %s in address book", args[0]), nil
	}
	if err := record.SetBirthday(args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Birthday of %s set to %s", args[0], args[1]), nil
}

func (b *Bot) get(args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("Invalid arguments. Usage: get <contact_name>")
	}
	record, ok := b.book.Get(args[0])
	if !ok {
		return fmt.Sprintf("Contact %s not found in the address book", args[0]), nil
	}
	phones := record.Phones()
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = p.String()
	}
	reply := fmt.Sprintf("Phones for %s: %s", args[0], strings.Join(values, ", "))
	if info, ok := record.BirthdayInfo(b.Clock.Now()); ok {
		reply += fmt.Sprintf(" (Birthday: %s, days to birthday: %d)", info.Birthday, info.Days)
	}
	return reply, nil
}

func (b *Bot) showAll(args []string) (string, error) {
	const usage = usageError("Invalid arguments. Usage: show all [start_page [end_page]]")
	if b.book.Len() == 0 {
		return "Address book is empty", nil
	}

	start, end := 1, math.MaxInt
	var err error
	switch len(args) {
	case 0:
	case 1:
		start, err = strconv.Atoi(args[0])
		end = start
	case 2: //nolint: mnd // start and end pages
		start, err = strconv.Atoi(args[0])
		if err == nil {
			end, err = strconv.Atoi(args[1])
		}
	default:
		return "", usage
	}
	if err != nil || start < 1 || end < start {
		return "", usage
	}

	now := b.Clock.Now()
	var sb strings.Builder
	page := 0
	for records := range b.book.Paginate() {
		page++
		if page < start {
			continue
		}
		if page > end {
			break
		}
		fmt.Fprintf(&sb, "Page %d:\n", page)
		for _, record := range records {
			sb.WriteString(record.String())
			if info, ok := record.BirthdayInfo(now); ok {
				fmt.Fprintf(&sb, " (Days to birthday: %d)", info.Days)
			}
			sb.WriteByte('\n')
		}
	}
	if sb.Len() == 0 {
		return fmt.Sprintf("There are only %d pages", page), nil
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// del asks for a confirmation on the input before deleting the contact.
func (b *Bot) del(args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError("Invalid arguments. Usage: del <contact_name>")
	}
	name := args[0]
	if _, ok := b.book.Get(name); !ok {
		return fmt.Sprintf("Contact %s not found in the address book", name), nil
	}
	if !b.confirm(fmt.Sprintf("Are you sure delete %s: Yes/No :", name)) {
		return fmt.Sprintf("Contact %s kept", name), nil
	}
	return b.book.DeleteRecord(name).Message, nil
}

func (b *Bot) stats([]string) (string, error) {
	var sb strings.Builder
	b.Metrics.WritePrometheus(&sb)
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
