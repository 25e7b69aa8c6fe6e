package jsvalidation

import (
	"bytes"

	"github.com/go-json-experiment/json/jsontext"
)

// Entry is one translated rule: [rule, parameters, message, implicit].
type Entry struct {
	Rule       string
	Parameters []string
	Message    string
	Implicit   bool
}

// Bucket groups entries the client dispatches the same way.
type Bucket struct {
	Name    string
	Entries []Entry
}

// FieldRules holds a field's buckets in first-seen order.
type FieldRules struct {
	Field   string
	Buckets []Bucket
}

// Result is the ordered field → bucket → entries structure handed to the
// renderer. Its JSON form keeps insertion order:
//
//	{"email": {"laravelValidation": [["Required", [], "The email field is required.", true]]}}
type Result struct {
	fields []FieldRules
	index  map[string]int
}

func newResult() *Result {
	return &Result{index: make(map[string]int)}
}

// add appends e to field's bucket, creating both on first use.
func (r *Result) add(field, bucket string, e Entry) {
	i, ok := r.index[field]
	if !ok {
		i = len(r.fields)
		r.index[field] = i
		r.fields = append(r.fields, FieldRules{Field: field})
	}
	fr := &r.fields[i]
	for j := range fr.Buckets {
		if fr.Buckets[j].Name == bucket {
			fr.Buckets[j].Entries = append(fr.Buckets[j].Entries, e)
			return
		}
	}
	fr.Buckets = append(fr.Buckets, Bucket{Name: bucket, Entries: []Entry{e}})
}

// Fields returns the translated fields in order.
func (r *Result) Fields() []FieldRules { return r.fields }

// Field returns the buckets of a single field.
func (r *Result) Field(name string) (FieldRules, bool) {
	i, ok := r.index[name]
	if !ok {
		return FieldRules{}, false
	}
	return r.fields[i], true
}

// Bucket returns the entries of field in bucket.
func (r *Result) Bucket(field, bucket string) []Entry {
	fr, _ := r.Field(field)
	for _, b := range fr.Buckets {
		if b.Name == bucket {
			return b.Entries
		}
	}
	return nil
}

// Len returns the number of fields.
func (r *Result) Len() int { return len(r.fields) }

// MarshalJSONTo writes r as an insertion-ordered JSON object.
func (r *Result) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, fr := range r.fields {
		if err := writeTokens(enc, jsontext.String(fr.Field), jsontext.BeginObject); err != nil {
			return err
		}
		for _, b := range fr.Buckets {
			if err := writeTokens(enc, jsontext.String(b.Name), jsontext.BeginArray); err != nil {
				return err
			}
			for _, e := range b.Entries {
				if err := e.MarshalJSONTo(enc); err != nil {
					return err
				}
			}
			if err := enc.WriteToken(jsontext.EndArray); err != nil {
				return err
			}
		}
		if err := enc.WriteToken(jsontext.EndObject); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// MarshalJSON lets encoding/json callers get the same ordered output.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.MarshalJSONTo(jsontext.NewEncoder(&buf)); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

// MarshalJSONTo writes e as a four element tuple.
func (e Entry) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := writeTokens(enc, jsontext.BeginArray, jsontext.String(e.Rule), jsontext.BeginArray); err != nil {
		return err
	}
	for _, p := range e.Parameters {
		if err := enc.WriteToken(jsontext.String(p)); err != nil {
			return err
		}
	}
	return writeTokens(enc,
		jsontext.EndArray,
		jsontext.String(e.Message),
		jsontext.Bool(e.Implicit),
		jsontext.EndArray,
	)
}

func writeTokens(enc *jsontext.Encoder, tokens ...jsontext.Token) error {
	for _, t := range tokens {
		if err := enc.WriteToken(t); err != nil {
			return err
		}
	}
	return nil
}
