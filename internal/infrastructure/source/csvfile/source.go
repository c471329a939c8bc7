package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
	"github.com/kirillkom/legal-classification-browser/internal/core/ports"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/source"
)

// Source loads the base table from a delimited text file.
type Source struct {
	storage ports.ObjectStorage
	schema  domain.Schema
}

func New(storage ports.ObjectStorage, schema domain.Schema) *Source {
	return &Source{
		storage: storage,
		schema:  schema,
	}
}

func (s *Source) Load(ctx context.Context) (*domain.Table, error) {
	reader, err := s.storage.Open(ctx, s.schema.SourceFile)
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceUnavailable, "open "+s.schema.SourceFile, err)
	}
	defer reader.Close()

	table, err := Decode(reader, s.schema)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.schema.SourceFile, err)
	}
	return table, nil
}

// Decode parses UTF-8 delimited text, with or without a byte order mark.
// Bytes that are not valid UTF-8 make the file invalid instead of being
// replaced.
func Decode(r io.Reader, schema domain.Schema) (*domain.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceInvalid, "read", err)
	}
	if len(raw) == 0 {
		return nil, domain.WrapError(domain.ErrSourceInvalid, "decode", errors.New("empty file"))
	}
	if !utf8.Valid(raw) {
		return nil, domain.WrapError(domain.ErrSourceInvalid, "decode", errors.New("file is not valid UTF-8"))
	}

	decoded := transform.NewReader(bytes.NewReader(raw), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.Comma = delimiter(schema)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.WrapError(domain.ErrSourceInvalid, "decode", errors.New("empty file"))
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceInvalid, "decode header", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceInvalid, "decode rows", err)
	}
	return source.BuildTable(schema, header, rows)
}

func delimiter(schema domain.Schema) rune {
	if schema.Delimiter == 0 {
		return ','
	}
	return schema.Delimiter
}
