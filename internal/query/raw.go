package query

import (
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// rawColumn compares the JSON-named field of a record when no explicit
// column is registered. Records without the field compare equal.
func rawColumn[T any](name string) Column[T] {
	return func(record T) Value {
		value, ok := lookupField(reflect.ValueOf(record), name)
		if !ok {
			return Missing
		}
		return toValue(value)
	}
}

func lookupField(v reflect.Value, name string) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if field.Anonymous && tag == "" {
			if found, ok := lookupField(v.Field(i), name); ok {
				return found, true
			}
			continue
		}
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func toValue(v reflect.Value) Value {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Missing
		}
		v = v.Elem()
	}
	if v.Type() == timeType {
		return Time(v.Interface().(time.Time))
	}

	switch v.Kind() {
	case reflect.String:
		return Text(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(v.Float())
	case reflect.Bool:
		if v.Bool() {
			return Number(1)
		}
		return Number(0)
	default:
		return Missing
	}
}
