package datastores

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/oaiiae/addressbook/contacts"
)

// BooksFile implements [BooksStore] on a single file.
// The file is opened for the duration of each call only.
type BooksFile struct {
	Path    string
	Options []contacts.Option
}

var _ BooksStore = (*BooksFile)(nil)

// Load decodes the file. A missing file loads as an empty book.
func (s *BooksFile) Load(_ context.Context) (_ *contacts.AddressBook, err error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return contacts.NewAddressBook(s.Options...), nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	return Decode(f, s.Options...)
}

// Save encodes b to a temporary file next to the target then renames it over the target.
func (s *BooksFile) Save(_ context.Context, b *contacts.AddressBook) (err error) {
	f, err := os.CreateTemp(filepath.Dir(s.Path), "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(f.Name()))
		}
	}()

	err = multierr.Combine(Encode(f, b), f.Sync(), f.Close())
	if err != nil {
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	return os.Rename(f.Name(), s.Path)
}
