package datastores

import (
	"bytes"
	"context"
	"sync"

	"github.com/oaiiae/addressbook/contacts"
)

// BooksInmem implements [BooksStore] by keeping the encoded book in memory.
type BooksInmem struct {
	mu   sync.Mutex
	data []byte
	opts []contacts.Option
}

var _ BooksStore = (*BooksInmem)(nil)

func NewBooksInmem(opts ...contacts.Option) *BooksInmem {
	return &BooksInmem{opts: opts}
}

func (s *BooksInmem) Load(_ context.Context) (*contacts.AddressBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Decode(bytes.NewReader(s.data), s.opts...)
}

func (s *BooksInmem) Save(_ context.Context, b *contacts.AddressBook) error {
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = buf.Bytes()
	return nil
}
