package swaggrt

import (
	"encoding"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DecodeQuery fills the struct pointed to by dst from query values. Fields
// are matched by their query tag, `query:"name,required"`; untagged fields
// use their Go name. A missing required parameter or a malformed value is
// an *HTTPError with status 400.
func DecodeQuery(values url.Values, dst any) error {
	return decodeValues(values, dst, "query", "query parameter")
}

var (
	textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshaler   = reflect.TypeFor[encoding.TextMarshaler]()
	timeType        = reflect.TypeFor[time.Time]()
)

type fieldSpec struct {
	index    int
	name     string
	required bool
}

func fieldsOf(t reflect.Type, tagKey string) []fieldSpec {
	var specs []fieldSpec
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get(tagKey), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		specs = append(specs, fieldSpec{
			index:    i,
			name:     name,
			required: containsOption(opts, "required"),
		})
	}
	return specs
}

func containsOption(opts, want string) bool {
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == want {
			return true
		}
	}
	return false
}

func decodeValues(values url.Values, dst any, tagKey, what string) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode %s: destination must be a non-nil struct pointer, got %T", what, dst)
	}
	sv := rv.Elem()
	for _, spec := range fieldsOf(sv.Type(), tagKey) {
		raw, ok := values[spec.name]
		if !ok || len(raw) == 0 {
			if spec.required {
				return Errorf(http.StatusBadRequest, "missing required %s %q", what, spec.name)
			}
			continue
		}
		if err := setValue(sv.Field(spec.index), raw); err != nil {
			return &HTTPError{
				Status:  http.StatusBadRequest,
				Message: fmt.Sprintf("invalid %s %q", what, spec.name),
				Cause:   err,
			}
		}
	}
	return nil
}

// setValue stores raw into v. Slices take every value, everything else the
// first one.
func setValue(v reflect.Value, raw []string) error {
	if v.Kind() == reflect.Pointer {
		elem := reflect.New(v.Type().Elem())
		if err := setValue(elem.Elem(), raw); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	}
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8 {
		s := reflect.MakeSlice(v.Type(), len(raw), len(raw))
		for i, r := range raw {
			if err := setScalar(s.Index(i), r); err != nil {
				return err
			}
		}
		v.Set(s)
		return nil
	}
	return setScalar(v, raw[0])
}

func setScalar(v reflect.Value, s string) error {
	if v.Type() == timeType {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(t))
		return nil
	}
	if v.CanAddr() && v.Addr().Type().Implements(textUnmarshaler) {
		return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		// []byte
		v.SetBytes([]byte(s))
	default:
		return fmt.Errorf("unsupported type %s", v.Type())
	}
	return nil
}

// encodeValues flattens a struct, or a pointer to one, into form values.
// Nil pointers and empty slices are omitted.
func encodeValues(src any, tagKey string) (url.Values, error) {
	rv := reflect.ValueOf(src)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return url.Values{}, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("form encoding needs a struct, got %T", src)
	}
	values := url.Values{}
	for _, spec := range fieldsOf(rv.Type(), tagKey) {
		fv := rv.Field(spec.index)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() != reflect.Uint8 {
			for i := range fv.Len() {
				s, err := formatScalar(fv.Index(i))
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", spec.name, err)
				}
				values.Add(spec.name, s)
			}
			continue
		}
		s, err := formatScalar(fv)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", spec.name, err)
		}
		values.Set(spec.name, s)
	}
	return values, nil
}

func formatScalar(v reflect.Value) (string, error) {
	if v.Type() == timeType {
		return v.Interface().(time.Time).Format(time.RFC3339), nil
	}
	if v.Type().Implements(textMarshaler) {
		b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		return string(b), err
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
	case reflect.Slice:
		return string(v.Bytes()), nil
	default:
		return "", fmt.Errorf("unsupported type %s", v.Type())
	}
}
