package main

import (
	"context"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/oaiiae/addressbook/cli/bot"
	"github.com/oaiiae/addressbook/cli/logger"
	"github.com/oaiiae/addressbook/contacts"
	"github.com/oaiiae/addressbook/datastores"
)

// Options for the CLI. Pass `--book` or set the `SERVICE_BOOK` env var.
type Options struct {
	Book     string `short:"b" doc:"address book file"                  default:"addressbook.bin"`
	PageSize int    `          doc:"contacts per page for show all"     default:"5"`
	Prompt   string `          doc:"prompt printed before each command" default:"Wait...> "`

	logger.Options
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log := logger.New(&options.Options)
		b := &bot.Bot{
			Store: &datastores.BooksFile{
				Path:    options.Book,
				Options: []contacts.Option{contacts.WithPageSize(options.PageSize)},
			},
			Logger: log,
			In:     os.Stdin,
			Out:    os.Stdout,
			Prompt: options.Prompt,
		}
		ctx, cancel := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			defer cancel()
			if err := b.Open(ctx); err != nil {
				log.Error("failed to open address book", "err", err)
				return
			}
			if err := b.Run(ctx); err != nil {
				log.Warn("command loop stopped", "err", err)
			}
			if err := b.Save(ctx); err != nil {
				log.Error("failed to save address book", "err", err)
			}
		})
		hooks.OnStop(func() {
			cancel()
			err := b.Save(context.Background())
			if err != nil {
				log.Warn("could not save the address book", "err", err)
			}
		})
	})
	cli.Run()
}
