package datastores

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/multiformats/go-varint"

	"github.com/oaiiae/addressbook/contacts"
)

// Layout of an encoded book, integers being unsigned varints
// and strings a varint length followed by the bytes:
//
//	magic "ABK1"
//	record count
//	per record: name, phone count, phones, birthday flag byte (0|1), birthday if flag is 1
var magic = []byte("ABK1")

// maxStringLen bounds the length of decoded strings.
const maxStringLen = 1 << 16

// ErrPersistence is wrapped by every error returned when a non-empty stream cannot be decoded.
var ErrPersistence = errors.New("datastores: cannot decode address book")

// Encode writes b to w.
func Encode(w io.Writer, b *contacts.AddressBook) error {
	bw := bufio.NewWriter(w)
	bw.Write(magic)
	bw.Write(varint.ToUvarint(uint64(b.Len())))
	for _, r := range b.All() {
		writeString(bw, r.Name().String())
		phones := r.Phones()
		bw.Write(varint.ToUvarint(uint64(len(phones))))
		for _, p := range phones {
			writeString(bw, p.String())
		}
		if birthday, ok := r.Birthday(); ok {
			bw.WriteByte(1)
			writeString(bw, birthday.String())
		} else {
			bw.WriteByte(0)
		}
	}
	return bw.Flush() // bufio.Writer keeps the first write error
}

func writeString(bw *bufio.Writer, s string) {
	bw.Write(varint.ToUvarint(uint64(len(s))))
	bw.WriteString(s)
}

// Decode reads a book from r. An empty stream decodes to an empty book.
func Decode(r io.Reader, opts ...contacts.Option) (*contacts.AddressBook, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err == io.EOF {
		return contacts.NewAddressBook(opts...), nil
	}

	d := decoder{r: br}
	book, err := d.book(opts)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return book, nil
}

type decoder struct {
	r *bufio.Reader
}

func (d *decoder) book(opts []contacts.Option) (*contacts.AddressBook, error) {
	head := make([]byte, len(magic))
	if _, err := io.ReadFull(d.r, head); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if !bytes.Equal(head, magic) {
		return nil, fmt.Errorf("unknown header %q", head)
	}

	count, err := varint.ReadUvarint(d.r)
	if err != nil {
		return nil, fmt.Errorf("reading record count: %w", err)
	}

	book := contacts.NewAddressBook(opts...)
	for i := range count {
		record, err := d.record()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, ok := book.Get(record.Name().String()); ok {
			return nil, fmt.Errorf("record %d: duplicate name %q", i, record.Name())
		}
		book.AddRecord(record)
	}

	if _, err := d.r.ReadByte(); err != io.EOF {
		return nil, errors.New("trailing data after last record")
	}
	return book, nil
}

func (d *decoder) record() (*contacts.Record, error) {
	raw, err := d.string()
	if err != nil {
		return nil, fmt.Errorf("reading name: %w", err)
	}
	name, err := contacts.NewName(raw)
	if err != nil {
		return nil, err
	}

	count, err := varint.ReadUvarint(d.r)
	if err != nil {
		return nil, fmt.Errorf("reading phone count: %w", err)
	}
	var phones []contacts.Phone
	for range count {
		raw, err := d.string()
		if err != nil {
			return nil, fmt.Errorf("reading phone: %w", err)
		}
		phone, err := contacts.NewPhone(raw)
		if err != nil {
			return nil, err
		}
		phones = append(phones, phone)
	}

	flag, err := d.r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading birthday flag: %w", err)
	}
	var birthday *contacts.Birthday
	switch flag {
	case 0:
	case 1:
		raw, err := d.string()
		if err != nil {
			return nil, fmt.Errorf("reading birthday: %w", err)
		}
		b, err := contacts.NewBirthday(raw)
		if err != nil {
			return nil, err
		}
		birthday = &b
	default:
		return nil, fmt.Errorf("invalid birthday flag %d", flag)
	}

	record := contacts.NewRecord(name, phones, birthday)
	if len(record.Phones()) != len(phones) {
		return nil, fmt.Errorf("duplicate phones for %q", name)
	}
	return record, nil
}

func (d *decoder) string() (string, error) {
	n, err := varint.ReadUvarint(d.r)
	if err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", fmt.Errorf("string length %d exceeds %d", n, maxStringLen)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
