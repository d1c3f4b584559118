package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader(t *testing.T) {
	t.Run("reads header row", func(t *testing.T) {
		r, err := NewReader(strings.NewReader("Category,Amount,Description\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"category", "amount", "description"}, r.Headers())
	})

	t.Run("strips UTF-8 BOM", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("category,amount\noffice_supplies,10.00\n")...)
		r, err := NewReaderFromBytes(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"category", "amount"}, r.Headers())
	})

	t.Run("rejects empty file", func(t *testing.T) {
		_, err := NewReader(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("rejects invalid UTF-8", func(t *testing.T) {
		_, err := NewReaderFromBytes([]byte{0xFF, 0xFE, 0x41, 0x42})
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		r, err := NewReader(strings.NewReader("category;amount\ntravel;5.50\n"), WithDelimiter(';'))
		require.NoError(t, err)
		row, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, "travel", row.Get("category"))
		assert.Equal(t, "5.50", row.Get("amount"))
	})
}

func TestReaderMissingHeaders(t *testing.T) {
	r, err := NewReader(strings.NewReader("category,amount\n"))
	require.NoError(t, err)

	missing := r.MissingHeaders([]string{"category", "amount", "incurred_at"})
	assert.Equal(t, []string{"incurred_at"}, missing)

	assert.Empty(t, r.MissingHeaders([]string{"category"}))
}

func TestReaderRead(t *testing.T) {
	input := "category,amount,description\n" +
		"travel, 120.00 ,Taxi to airport\n" +
		"meals,35.20\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	row, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, "120.00", row.Get("amount"))
	assert.Equal(t, "Taxi to airport", row.Get("description"))

	row, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, 3, row.Line)
	assert.Equal(t, "", row.Get("description"))

	_, err = r.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReaderReadAll(t *testing.T) {
	t.Run("skips blank rows", func(t *testing.T) {
		input := "category,amount\ntravel,10\n,,\nmeals,20\n"
		r, err := NewReader(strings.NewReader(input))
		require.NoError(t, err)

		rows, err := r.ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "meals", rows[1].Get("category"))
	})

	t.Run("header only", func(t *testing.T) {
		r, err := NewReader(strings.NewReader("category,amount\n"))
		require.NoError(t, err)
		_, err = r.ReadAll()
		assert.ErrorIs(t, err, ErrNoDataRows)
	})
}

func TestErrorList(t *testing.T) {
	l := NewErrorList(2)
	assert.False(t, l.HasErrors())

	l.Add(NewRowError(2, "amount", "invalid amount"))
	l.Add(NewRowError(3, "category", "unknown category"))
	l.Add(NewRowError(4, "", "row malformed"))

	assert.True(t, l.HasErrors())
	assert.Equal(t, 3, l.Total())
	assert.Len(t, l.Errors(), 2)
	assert.True(t, l.Truncated())
	assert.Equal(t, `line 2, column "amount": invalid amount`, l.Errors()[0].Error())
}
