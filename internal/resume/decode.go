package resume

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var leadingNumberRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)

// FromMap decodes loosely typed data, such as a model response, into a
// profile. Scalars are coerced to the target types and single values are
// promoted to slices. A field with an incompatible shape keeps its zero value
// and its path is reported in dropped; the rest of the document still
// decodes. The result still needs Normalize.
func FromMap(data map[string]any) (p *ParsedResumeData, dropped []string) {
	p = &ParsedResumeData{}
	return p, DecodeLenient(data, p)
}

// DecodeLenient decodes data into the struct pointed to by out one field at a
// time, descending into nested objects and list items when a whole field does
// not fit. It returns the paths of the values it had to discard.
func DecodeLenient(data map[string]any, out any) []string {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return []string{"."}
	}

	var dropped []string
	decodeStruct(data, v.Elem(), "", &dropped)
	return dropped
}

func decodeStruct(data map[string]any, v reflect.Value, prefix string, dropped *[]string) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		key, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if key == "-" {
			continue
		}
		if key == "" {
			key = sf.Name
		}

		raw, ok := lookup(data, key)
		if !ok || raw == nil {
			continue
		}

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		decodeValue(raw, v.Field(i), path, dropped)
	}
}

// decodeValue reports whether anything from raw was kept.
func decodeValue(raw any, field reflect.Value, path string, dropped *[]string) bool {
	if err := decodeStrict(raw, field.Addr().Interface()); err == nil {
		return true
	}
	field.Set(reflect.Zero(field.Type()))

	switch field.Kind() {
	case reflect.Struct:
		if m, ok := raw.(map[string]any); ok {
			decodeStruct(m, field, path, dropped)
			return true
		}
	case reflect.Slice:
		if items, ok := raw.([]any); ok {
			decodeSlice(items, field, path, dropped)
			return true
		}
	}

	*dropped = append(*dropped, path)
	return false
}

func decodeSlice(items []any, field reflect.Value, path string, dropped *[]string) {
	out := reflect.MakeSlice(field.Type(), 0, len(items))
	for i, item := range items {
		if item == nil {
			continue
		}
		elem := reflect.New(field.Type().Elem()).Elem()
		if decodeValue(item, elem, fmt.Sprintf("%s[%d]", path, i), dropped) {
			out = reflect.Append(out, elem)
		}
	}
	field.Set(out)
}

func decodeStrict(input, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(promoteNamed, leadingNumber),
		Result:           result,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func lookup(data map[string]any, key string) (any, bool) {
	if v, ok := data[key]; ok {
		return v, true
	}
	for k, v := range data {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// promoteNamed turns a bare string into {"name": s} for entries that carry a
// name, such as certifications, projects and awards.
func promoteNamed(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Struct {
		return data, nil
	}
	for i := 0; i < to.NumField(); i++ {
		key, _, _ := strings.Cut(to.Field(i).Tag.Get("json"), ",")
		if key == "name" {
			return map[string]any{"name": data}, nil
		}
	}
	return data, nil
}

// leadingNumber accepts values like "6+" or "3.5 years" for numeric fields.
func leadingNumber(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
	default:
		return data, nil
	}

	s := reflect.ValueOf(data).String()
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return strings.TrimSpace(s), nil
	}
	if m := leadingNumberRe.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	return data, nil
}
