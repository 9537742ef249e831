package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

// Content types produced by the body helpers.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Body is an encoded request body together with its content type.
type Body struct {
	ContentType string
	Data        []byte
}

// BodyFormat names the encoding that failed in a BodyError.
type BodyFormat string

const (
	BodyFormatJSON BodyFormat = "json"
	BodyFormatForm BodyFormat = "form"
)

// BodyError reports that request body data could not be encoded.
type BodyError struct {
	Format BodyFormat
	Err    error
}

// Error implements the error interface.
func (e *BodyError) Error() string {
	switch e.Format {
	case BodyFormatForm:
		return fmt.Sprintf("failed to URL encode form parameters: %v", e.Err)
	default:
		return fmt.Sprintf("failed to JSON encode form parameters: %v", e.Err)
	}
}

// Unwrap returns the encoder error.
func (e *BodyError) Unwrap() error { return e.Err }

// JSONBody encodes v as a JSON request body.
func JSONBody(v any) (*Body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &BodyError{Format: BodyFormatJSON, Err: err}
	}
	return &Body{ContentType: ContentTypeJSON, Data: data}, nil
}

// FormBody encodes v as a URL-encoded form body. v is either url.Values or
// a struct (or pointer to one) whose fields are named by their `form` tag,
// falling back to the `json` tag and then the field name. Fields tagged "-"
// are skipped, and empty values are dropped when the tag says omitempty.
func FormBody(v any) (*Body, error) {
	var values url.Values
	switch t := v.(type) {
	case url.Values:
		values = t
	case map[string][]string:
		values = url.Values(t)
	default:
		var err error
		values, err = structToValues(v)
		if err != nil {
			return nil, &BodyError{Format: BodyFormatForm, Err: err}
		}
	}
	return &Body{ContentType: ContentTypeForm, Data: []byte(values.Encode())}, nil
}

type tagOptions string

func (o tagOptions) contains(name string) bool {
	for _, opt := range strings.Split(string(o), ",") {
		if opt == name {
			return true
		}
	}
	return false
}

func structToValues(v any) (url.Values, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unsupported form value of type %s", rv.Type())
	}

	out := url.Values{}
	t := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts := formTagName(field)
		if name == "" {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		val := formatValue(fv.Interface())
		if val == "" && opts.contains("omitempty") {
			continue
		}
		out.Set(name, val)
	}
	return out, nil
}

// formTagName prefers the form tag, then the json tag, then the field name.
func formTagName(f reflect.StructField) (string, tagOptions) {
	for _, key := range []string{"form", "json"} {
		tag := f.Tag.Get(key)
		if tag == "" {
			continue
		}
		if tag == "-" {
			return "", ""
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		return name, tagOptions(opts)
	}
	return f.Name, ""
}
