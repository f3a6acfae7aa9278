package contacts

import (
	"fmt"
	"iter"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultPageSize is the page size of an [AddressBook] built without [WithPageSize].
const DefaultPageSize = 5

// AddressBook stores records by name in insertion order.
// It is not safe for concurrent use.
type AddressBook struct {
	entries  *orderedmap.OrderedMap[string, *Record]
	pageSize int
}

type Option func(*AddressBook)

// WithPageSize sets the number of records per page. Values below 1 keep the default.
func WithPageSize(n int) Option {
	return func(b *AddressBook) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

func NewAddressBook(opts ...Option) *AddressBook {
	b := &AddressBook{
		entries:  orderedmap.New[string, *Record](),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *AddressBook) PageSize() int { return b.pageSize }
func (b *AddressBook) Len() int      { return b.entries.Len() }

// AddRecord stores r under its name, replacing any record already stored there
// while keeping that record's position.
func (b *AddressBook) AddRecord(r *Record) Outcome {
	b.entries.Set(r.name.value, r)
	return Outcome{Added, fmt.Sprintf("Contact %s added", r.name)}
}

func (b *AddressBook) DeleteRecord(name string) Outcome {
	if _, ok := b.entries.Delete(name); !ok {
		return Outcome{NotExist, fmt.Sprintf("Contact %s does not exist", name)}
	}
	return Outcome{Deleted, fmt.Sprintf("Contact %s deleted", name)}
}

func (b *AddressBook) Get(name string) (*Record, bool) {
	return b.entries.Get(name)
}

// All returns the records in insertion order.
func (b *AddressBook) All() []*Record {
	records := make([]*Record, 0, b.entries.Len())
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		records = append(records, pair.Value)
	}
	return records
}

// Paginate returns the records in pages of [AddressBook.PageSize], the last one
// possibly shorter. The records are captured when Paginate is called, so mutating
// the book afterwards does not change the pages yielded.
func (b *AddressBook) Paginate() iter.Seq[[]*Record] {
	records, size := b.All(), b.pageSize
	return func(yield func([]*Record) bool) {
		for i := 0; i < len(records); i += size {
			end := min(i+size, len(records))
			if !yield(records[i:end:end]) {
				return
			}
		}
	}
}

func (b *AddressBook) String() string {
	lines := make([]string, 0, b.entries.Len())
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		lines = append(lines, pair.Value.String())
	}
	return strings.Join(lines, "\n")
}

// Equal reports whether both books hold equal records in the same order.
func (b *AddressBook) Equal(o *AddressBook) bool {
	if b.entries.Len() != o.entries.Len() {
		return false
	}
	for p, q := b.entries.Oldest(), o.entries.Oldest(); p != nil; p, q = p.Next(), q.Next() {
		if p.Key != q.Key || !p.Value.Equal(q.Value) {
			return false
		}
	}
	return true
}
