package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyFile is returned when the uploaded file has no content
	ErrEmptyFile = errors.New("file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")

	// ErrMissingHeader is returned when the file has no header row
	ErrMissingHeader = errors.New("file is missing a header row")

	// ErrNoDataRows is returned when the file has a header but no data
	ErrNoDataRows = errors.New("file contains no data rows")
)

// Reader parses an uploaded CSV file into header-keyed rows. A UTF-8
// BOM is stripped and the content must be valid UTF-8.
type Reader struct {
	delimiter rune
	headers   []string
	headerIdx map[string]int
	line      int
	csv       *csv.Reader
}

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithDelimiter sets the field delimiter (default comma)
func WithDelimiter(d rune) ReaderOption {
	return func(r *Reader) {
		r.delimiter = d
	}
}

// NewReader wraps an io.Reader and reads the header row
func NewReader(src io.Reader, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		delimiter: ',',
		headerIdx: make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}

	buf := bufio.NewReader(src)

	bom, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bom) == 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	if err := checkUTF8(buf); err != nil {
		return nil, err
	}

	r.csv = csv.NewReader(buf)
	r.csv.Comma = r.delimiter
	r.csv.LazyQuotes = true
	r.csv.TrimLeadingSpace = true
	r.csv.FieldsPerRecord = -1

	if err := r.readHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewReaderFromBytes builds a Reader over an in-memory file
func NewReaderFromBytes(data []byte, opts ...ReaderOption) (*Reader, error) {
	return NewReader(bytes.NewReader(data), opts...)
}

func checkUTF8(buf *bufio.Reader) error {
	const probeSize = 4096
	probe, err := buf.Peek(probeSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(probe) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(probe) {
		return ErrInvalidEncoding
	}
	return nil
}

func (r *Reader) readHeader() error {
	record, err := r.csv.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	r.headers = make([]string, len(record))
	for i, h := range record {
		name := strings.TrimSpace(strings.ToLower(h))
		r.headers[i] = name
		r.headerIdx[name] = i
	}
	r.line = 1
	return nil
}

// Headers returns the lowercased header names in file order
func (r *Reader) Headers() []string {
	return r.headers
}

// MissingHeaders returns which of the required headers are absent
func (r *Reader) MissingHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if _, ok := r.headerIdx[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is a single data row keyed by header name
type Row struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value for a column
func (row *Row) Get(header string) string {
	return row.Fields[header]
}

// IsEmpty reports whether every field in the row is blank
func (row *Row) IsEmpty() bool {
	for _, v := range row.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Read returns the next data row, or io.EOF when exhausted
func (r *Reader) Read() (*Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	r.line++
	if err != nil {
		return nil, fmt.Errorf("error reading line %d: %w", r.line, err)
	}

	row := &Row{
		Line:   r.line,
		Fields: make(map[string]string, len(r.headers)),
	}
	for i, header := range r.headers {
		if i < len(record) {
			row.Fields[header] = strings.TrimSpace(record[i])
		} else {
			row.Fields[header] = ""
		}
	}
	return row, nil
}

// ReadAll returns all non-empty data rows
func (r *Reader) ReadAll() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}
	return rows, nil
}
