package datastores

import (
	"bytes"
	"io"
	"testing"

	"github.com/multiformats/go-varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/addressbook/contacts"
)

func newRecord(t *testing.T, name, birthday string, phones ...string) *contacts.Record {
	t.Helper()
	n, err := contacts.NewName(name)
	require.NoError(t, err)
	ps := make([]contacts.Phone, 0, len(phones))
	for _, p := range phones {
		ps = append(ps, contacts.MustPhone(p))
	}
	var b *contacts.Birthday
	if birthday != "" {
		bd, err := contacts.NewBirthday(birthday)
		require.NoError(t, err)
		b = &bd
	}
	return contacts.NewRecord(n, ps, b)
}

func newBook(t *testing.T) *contacts.AddressBook {
	t.Helper()
	book := contacts.NewAddressBook()
	book.AddRecord(newRecord(t, "john", "26-11-1978", "0501234567", "0677654321"))
	book.AddRecord(newRecord(t, "jane", "", "0931112233"))
	book.AddRecord(newRecord(t, "Олена", "", "3333333", "1111111", "2222222"))
	return book
}

func encode(t *testing.T, book *contacts.AddressBook) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, book))
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	book := newBook(t)

	decoded, err := Decode(bytes.NewReader(encode(t, book)))
	require.NoError(t, err)
	assert.True(t, book.Equal(decoded))
	assert.Equal(t, book.String(), decoded.String())

	r, ok := decoded.Get("Олена")
	require.True(t, ok)
	assert.Equal(t, "Олена: [3333333, 1111111, 2222222]", r.String())
}

func TestRoundTripEmpty(t *testing.T) {
	book := contacts.NewAddressBook()
	data := encode(t, book)
	assert.Equal(t, []byte("ABK1\x00"), data)

	decoded, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.Len())
}

func TestDecodeEmptyStream(t *testing.T) {
	book, err := Decode(bytes.NewReader(nil), contacts.WithPageSize(3))
	require.NoError(t, err)
	assert.Equal(t, 0, book.Len())
	assert.Equal(t, 3, book.PageSize())
}

func TestDecodeLayout(t *testing.T) {
	data := []byte("ABK1")
	data = append(data, varint.ToUvarint(1)...)
	data = append(data, 4)
	data = append(data, "john"...)
	data = append(data, 1, 7)
	data = append(data, "1111111"...)
	data = append(data, 1, 10)
	data = append(data, "26-11-1978"...)

	book, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "john: [1111111] (Birthday: 26-11-1978)", book.String())
	assert.Equal(t, data, encode(t, book))
}

func TestDecodeCorrupt(t *testing.T) {
	valid := encode(t, newBook(t))

	for _, tt := range []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("not an address book")},
		{"truncated header", valid[:2]},
		{"missing count", valid[:4]},
		{"truncated record", valid[:len(valid)-3]},
		{"trailing data", append(bytes.Clone(valid), 0)},
		{"invalid phone", append([]byte("ABK1\x01\x04john\x01\x03123"), 0)},
		{"invalid birthday", []byte("ABK1\x01\x04john\x00\x01\x0a31-02-2024")},
		{"invalid birthday flag", []byte("ABK1\x01\x04john\x00\x02")},
		{"empty name", []byte("ABK1\x01\x00\x00\x00")},
		{"duplicate name", []byte("ABK1\x02\x04john\x00\x00\x04john\x00\x00")},
		{"duplicate phone", []byte("ABK1\x01\x04john\x02\x071111111\x071111111\x00")},
		{"huge string", append([]byte("ABK1\x01"), varint.ToUvarint(1<<40)...)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			book, err := Decode(bytes.NewReader(tt.data))
			require.ErrorIs(t, err, ErrPersistence)
			assert.Nil(t, book)
		})
	}

	t.Run("truncation is unexpected EOF", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(valid[:len(valid)-3]))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("invalid field is a validation error", func(t *testing.T) {
		_, err := Decode(bytes.NewReader([]byte("ABK1\x01\x04john\x00\x01\x0a31-02-2024")))
		require.ErrorIs(t, err, contacts.ErrValidation)
	})
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEncodeWriteError(t *testing.T) {
	err := Encode(failingWriter{io.ErrShortWrite}, newBook(t))
	require.ErrorIs(t, err, io.ErrShortWrite)
}
