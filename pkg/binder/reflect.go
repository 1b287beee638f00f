package binder

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

var urlValuesType = reflect.TypeOf(url.Values{})

// bindTagged sets every exported field carrying tag from lookup. Fields
// without the tag are left alone so several binders can share a struct.
// A url.Values field tagged "*" receives everything.
func bindTagged(v any, tag string, lookup func(name string) []string, all url.Values, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, ok := tagName(sf, tag)
		if !ok {
			continue
		}
		if name == "*" {
			if sf.Type == urlValuesType && all != nil {
				field.Set(reflect.ValueOf(all))
			}
			continue
		}
		values := lookup(name)
		if len(values) == 0 {
			continue
		}
		if err := setValue(field, values); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func tagName(sf reflect.StructField, tag string) (string, bool) {
	t, ok := sf.Tag.Lookup(tag)
	if !ok || t == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(t, ",")
	if name == "" {
		name = strings.ToLower(sf.Name)
	}
	return name, true
}

func setValue(field reflect.Value, values []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setValue(field.Elem(), values)
	case reflect.Slice:
		slice := reflect.MakeSlice(field.Type(), len(values), len(values))
		for i, s := range values {
			if err := setScalar(slice.Index(i), strings.TrimSpace(s)); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	default:
		return setScalar(field, values[0])
	}
}

func setScalar(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", s)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", s)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", s)
		}
		field.SetFloat(n)
	case reflect.Bool:
		switch strings.ToLower(s) {
		case "1", "t", "true", "on", "yes":
			field.SetBool(true)
		case "", "0", "f", "false", "off", "no":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid bool value %q", s)
		}
	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}
