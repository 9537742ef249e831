package api

import (
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// QueryParams is an ordered list of query parameters. The zero value is an
// empty list ready to use.
type QueryParams struct {
	params []param
}

type param struct {
	name  string
	value string
}

// Push appends a parameter. Values are formatted as follows: booleans as
// true/false, time.Time as RFC 3339 in UTC, slices as comma-separated lists,
// everything else through its string conversion.
func (p *QueryParams) Push(name string, value any) *QueryParams {
	p.params = append(p.params, param{name: name, value: formatValue(value)})
	return p
}

// PushOpt appends a parameter unless value is nil or a nil pointer.
// Non-nil pointers are dereferenced before formatting.
func (p *QueryParams) PushOpt(name string, value any) *QueryParams {
	if value == nil {
		return p
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return p
		}
		value = rv.Elem().Interface()
	}
	return p.Push(name, value)
}

// PushStruct appends the fields of the struct v, or of the struct v points
// to, in declaration order. Each field is named by its `url` tag; fields
// without one, or tagged "-", are skipped. Tag options:
//
//	omitempty  skip zero values, nil pointers and empty slices
//	date       format a time.Time as YYYY-MM-DD
//
// Values are formatted as by Push. PushStruct panics if v is not a struct.
func (p *QueryParams) PushStruct(v any) *QueryParams {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("api: PushStruct of non-struct %T", v))
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("url")
		if !ok || tag == "-" || !field.IsExported() {
			continue
		}
		name, rawOpts, _ := strings.Cut(tag, ",")
		opts := tagOptions(rawOpts)

		fv := rv.Field(i)
		if opts.contains("omitempty") && isEmptyValue(fv) {
			continue
		}
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				p.Push(name, "")
				continue
			}
			fv = fv.Elem()
		}
		value := fv.Interface()
		if ts, isTime := value.(time.Time); isTime && opts.contains("date") {
			value = ts.Format(time.DateOnly)
		}
		p.Push(name, value)
	}
	return p
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return v.IsZero()
}

// Extend appends every name/value pair of values, sorted by name.
func (p *QueryParams) Extend(values url.Values) *QueryParams {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		for _, v := range values[name] {
			p.params = append(p.params, param{name: name, value: v})
		}
	}
	return p
}

// Len returns the number of parameters.
func (p *QueryParams) Len() int {
	if p == nil {
		return 0
	}
	return len(p.params)
}

// Get returns the first value pushed under name.
func (p *QueryParams) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, kv := range p.params {
		if kv.name == name {
			return kv.value, true
		}
	}
	return "", false
}

// Encode returns the parameters in URL-encoded form, preserving order.
func (p *QueryParams) Encode() string {
	if p.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, kv := range p.params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.value))
	}
	return sb.String()
}

// AddToURL appends the parameters to the query string of u, keeping any
// query the URL already carries.
func (p *QueryParams) AddToURL(u *url.URL) {
	encoded := p.Encode()
	if encoded == "" {
		return
	}
	if u.RawQuery == "" {
		u.RawQuery = encoded
		return
	}
	u.RawQuery += "&" + encoded
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case []byte:
		return string(v)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return s
}
