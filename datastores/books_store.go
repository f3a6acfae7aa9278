package datastores

import (
	"context"

	"github.com/oaiiae/addressbook/contacts"
)

// BooksStore persists a whole [contacts.AddressBook].
type BooksStore interface {
	Load(context.Context) (*contacts.AddressBook, error)
	Save(context.Context, *contacts.AddressBook) error
}
