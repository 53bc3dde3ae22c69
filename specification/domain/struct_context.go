package specification

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// NewEntityContext adapts an arbitrary entity to the Context interface so a
// tree built against field names can be evaluated in memory. Structs resolve
// fields by `spec` tag first, then by case-insensitive field name. Nested
// structs become nested contexts, slices of structs become collections, nil
// pointers surface as NULL (a nil collection pointer as an empty collection).
func NewEntityContext(entity any) Context {
	if ctx, ok := entity.(Context); ok {
		return ctx
	}
	if m, ok := entity.(map[string]any); ok {
		return MapContext(m)
	}
	return StructContext{value: reflect.ValueOf(entity)}
}

type StructContext struct {
	value reflect.Value
}

func (c StructContext) Get(name string) (any, error) {
	v := c.value
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot resolve %q on %s", name, v.Kind())
	}

	field, ok := lookupField(v, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrKeyNotFound, name, v.Type())
	}
	return bindValue(field)
}

func lookupField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	var fallback reflect.Value
	var haveFallback bool
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tag, ok := sf.Tag.Lookup("spec"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == name {
				return v.Field(i), true
			}
			if tagName != "" {
				continue // explicit tag wins over the field name
			}
		}
		if sf.Name == name {
			return v.Field(i), true
		}
		if !haveFallback && strings.EqualFold(sf.Name, name) {
			fallback = v.Field(i)
			haveFallback = true
		}
	}
	return fallback, haveFallback
}

func bindValue(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			// A NULL collection behaves like an empty one, the same way
			// EXISTS over no rows is false rather than an error.
			if elem := v.Type().Elem(); elem.Kind() == reflect.Slice && isEntityElem(elem.Elem()) {
				return NewCollectionContext(nil), nil
			}
			return nil, nil
		}
		v = v.Elem()
	}

	if v.Type() == timeType {
		return v.Interface(), nil
	}
	if ctx, ok := v.Interface().(Context); ok {
		return ctx, nil
	}

	switch v.Kind() {
	case reflect.Struct:
		return StructContext{value: v}, nil
	case reflect.Map:
		if m, ok := v.Interface().(map[string]any); ok {
			return MapContext(m), nil
		}
		return v.Interface(), nil
	case reflect.Slice:
		if isEntityElem(v.Type().Elem()) {
			items := make([]Context, v.Len())
			for i := 0; i < v.Len(); i++ {
				item, err := bindValue(v.Index(i))
				if err != nil {
					return nil, err
				}
				ctx, ok := item.(Context)
				if !ok {
					return nil, fmt.Errorf("collection item %d is not a context", i)
				}
				items[i] = ctx
			}
			return NewCollectionContext(items), nil
		}
		return v.Interface(), nil
	default:
		return v.Interface(), nil
	}
}

func isEntityElem(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t != timeType
}

var timeType = reflect.TypeOf(time.Time{})

// MapContext resolves names against a plain map, mostly useful in tests and
// for entities deserialized from JSON.
type MapContext map[string]any

func (c MapContext) Get(name string) (any, error) {
	value, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	if value == nil {
		return nil, nil
	}
	return bindValue(reflect.ValueOf(value))
}
