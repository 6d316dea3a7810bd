package movie

import (
	"bytes"
	"moviehub/errs"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrInvalidCategory = errs.Errorf(errs.EINVALID, "invalid category")
	ErrMovieNotFound   = errs.Errorf(errs.ENOTFOUND, "Movie not found.")
)

// Movie is a catalog record exactly as stored: field order, types and
// missing fields are preserved. The catalog queries on uid, title, slug
// and categories, but sorting and filtering happen in the store, so none
// of them is required to be present or of a given type.
type Movie bson.D

// Lookup returns the value of the top-level field key.
func (m Movie) Lookup(key string) (interface{}, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// UID returns the stored ordering key, nil when absent. Its type is
// whatever the record holds (int32, int64, float64, string, ...).
func (m Movie) UID() interface{} {
	v, _ := m.Lookup("uid")
	return v
}

func (m Movie) Slug() string {
	return m.stringField("slug")
}

func (m Movie) Title() string {
	return m.stringField("title")
}

func (m Movie) stringField(key string) string {
	v, _ := m.Lookup(key)
	s, _ := v.(string)
	return s
}

// MarshalJSON renders the record as a JSON object with keys in stored order.
func (m Movie) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocument(&buf, bson.D(m)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeDocument(buf *bytes.Buffer, d bson.D) error {
	buf.WriteByte('{')
	for i, e := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeValue(buf, e.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValue(buf *bytes.Buffer, v interface{}) error {
	switch val := v.(type) {
	case bson.D:
		return writeDocument(buf, val)
	case Movie:
		return writeDocument(buf, bson.D(val))
	case bson.A:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

// Page is one window of a listing.
type Page struct {
	Movies     []Movie `json:"movies"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
}
