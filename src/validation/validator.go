package validation

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
)

// maxShown caps the number of issues rendered by Issues.Error
const maxShown = 5

// Issue is a single schema violation
type Issue struct {
	Pointer string // JSON Pointer of the offending value, "" for the document root
	Path    string // human readable form of Pointer, e.g. sets[0].cards[1]
	Message string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Issues is a list of schema violations sorted by path
type Issues []Issue

// Error summarises the first few issues
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].String())
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// AsIssues extracts Issues from an error
func AsIssues(err error) (Issues, bool) {
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Validator checks generic JSON documents against the catalog schema
type Validator struct {
	reflected *jsonschema.Schema
	schema    *santhosh.Schema
}

// NewValidator compiles the reflected catalog schema
func NewValidator(strict bool) (*Validator, error) {
	reflected := Schema(strict)
	raw, err := json.Marshal(reflected)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	compiler := santhosh.NewCompiler()
	compiler.Draft = santhosh.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{reflected: reflected, schema: schema}, nil
}

// Validate checks a document decoded into generic values (maps, slices, json.Number, ...).
// A schema mismatch is returned as Issues.
func (v *Validator) Validate(doc any) error {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *santhosh.ValidationError
	if !errors.As(err, &ve) {
		// invalid Go types in doc or a looping schema, neither is a document problem
		return fmt.Errorf("failed to validate document: %w", err)
	}

	issues := collectLeaves(ve, nil)
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pointer != issues[j].Pointer {
			return issues[i].Pointer < issues[j].Pointer
		}
		return issues[i].Message < issues[j].Message
	})
	return issues
}

// Prune removes object keys the catalog does not define, in place, so binding
// only ever sees exact field names. Integral numbers written as 1e2 or 100.0 in
// integer fields are rewritten as plain integers. doc must have passed Validate.
func (v *Validator) Prune(doc any) any {
	return prune(v.reflected, doc)
}

func prune(s *jsonschema.Schema, doc any) any {
	if s == nil {
		return doc
	}
	switch val := doc.(type) {
	case map[string]any:
		if s.Properties == nil {
			return val
		}
		for key, child := range val {
			prop, ok := s.Properties.Get(key)
			if !ok {
				delete(val, key)
				continue
			}
			val[key] = prune(prop, child)
		}
	case []any:
		for i, item := range val {
			val[i] = prune(s.Items, item)
		}
	case json.Number:
		if s.Type == "integer" {
			return plainInteger(val)
		}
	}
	return doc
}

// plainInteger renders an integral number without exponent or fraction
func plainInteger(n json.Number) json.Number {
	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() {
		return n
	}
	return json.Number(r.Num().String())
}

// collectLeaves flattens the error tree, keeping only the errors that have no causes
func collectLeaves(ve *santhosh.ValidationError, acc Issues) Issues {
	if len(ve.Causes) == 0 {
		return append(acc, Issue{
			Pointer: ve.InstanceLocation,
			Path:    PathFromPointer(ve.InstanceLocation),
			Message: ve.Message,
		})
	}
	for _, cause := range ve.Causes {
		acc = collectLeaves(cause, acc)
	}
	return acc
}

// PathFromPointer renders a JSON Pointer the way the rest of the program names fields:
// "/sets/0/cards/1/name" becomes "sets[0].cards[1].name" and "" becomes "$"
func PathFromPointer(ptr string) string {
	if ptr == "" || ptr == "/" {
		return "$"
	}

	b := &strings.Builder{}
	for _, token := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		if _, err := strconv.ParseUint(token, 10, 64); err == nil {
			fmt.Fprintf(b, "[%s]", token)
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(token)
	}
	return b.String()
}
