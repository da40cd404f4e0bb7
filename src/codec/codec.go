package codec

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/ogri-la/card-list-validator-go/src/catalog"
	"github.com/ogri-la/card-list-validator-go/src/validation"
)

// DefaultIndent is the indentation used by Encode
const DefaultIndent = "  "

// Kind classifies why a document could not be decoded
type Kind string

const (
	KindSyntax Kind = "malformed JSON"
	KindSchema Kind = "schema mismatch"
	KindType   Kind = "type mismatch"
)

// DecodeError is returned when a document cannot be decoded into a catalog
type DecodeError struct {
	Kind   Kind
	Issues validation.Issues // set for KindSchema
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Codec decodes catalog documents and encodes them back to JSON
type Codec struct {
	strict    bool
	indent    string
	validator *validation.Validator
}

// Option configures a Codec
type Option func(*Codec)

// WithStrict rejects documents containing keys the catalog does not define
func WithStrict(strict bool) Option {
	return func(c *Codec) {
		c.strict = strict
	}
}

// WithIndent sets the indentation used when encoding
func WithIndent(indent string) Option {
	return func(c *Codec) {
		c.indent = indent
	}
}

// New creates a codec, compiling the catalog schema
func New(opts ...Option) (*Codec, error) {
	c := &Codec{indent: DefaultIndent}
	for _, opt := range opts {
		opt(c)
	}

	v, err := validation.NewValidator(c.strict)
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}
	c.validator = v

	return c, nil
}

// Decode parses data and maps it onto a CardList. Keys the catalog does not
// define are dropped. A document failure is returned as a *DecodeError, any
// other error is internal.
func (c *Codec) Decode(data []byte) (*catalog.CardList, error) {
	// Syntax: exactly one JSON value
	doc, err := decodeGeneric(data)
	if err != nil {
		return nil, &DecodeError{Kind: KindSyntax, Err: err}
	}
	if !json.Valid(data) {
		return nil, &DecodeError{Kind: KindSyntax, Err: errors.New("unexpected data after top-level value")}
	}

	// Shape: required fields, value types and ranges, unknown keys in strict mode
	if err := c.validator.Validate(doc); err != nil {
		issues, ok := validation.AsIssues(err)
		if !ok {
			return nil, err
		}
		return nil, &DecodeError{Kind: KindSchema, Issues: issues, Err: err}
	}

	// Typed: bind from the pruned document, field matching in the binder ignores case
	pruned, err := json.Marshal(c.validator.Prune(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode pruned document: %w", err)
	}
	var list catalog.CardList
	if err := json.Unmarshal(pruned, &list); err != nil {
		return nil, &DecodeError{Kind: KindType, Err: err}
	}

	return &list, nil
}

// Encode renders a catalog as indented JSON. Absent optional fields are omitted.
func (c *Codec) Encode(list *catalog.CardList) ([]byte, error) {
	if list == nil {
		return nil, errors.New("cannot encode a nil catalog")
	}

	data, err := json.MarshalIndent(list, "", c.indent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	// a catalog built in code can hold nil required slices, which encode as null
	doc, err := decodeGeneric(data)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read encoded catalog: %w", err)
	}
	if err := c.validator.Validate(doc); err != nil {
		return nil, fmt.Errorf("encoded catalog would not decode: %w", err)
	}

	return data, nil
}

// decodeGeneric reads one JSON value into maps, slices and json.Number
func decodeGeneric(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

var defaultCodec = sync.OnceValues(func() (*Codec, error) {
	return New()
})

// Decode decodes data with the default, lenient codec
func Decode(data []byte) (*catalog.CardList, error) {
	c, err := defaultCodec()
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

// Encode encodes list with the default codec
func Encode(list *catalog.CardList) ([]byte, error) {
	c, err := defaultCodec()
	if err != nil {
		return nil, err
	}
	return c.Encode(list)
}
