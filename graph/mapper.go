package graph

import (
	"reflect"
	"time"
)

// ValueMapper negotiates raw driver column values (as decoded off the wire) into the concrete Go types callers scan
// result rows into. Drivers construct one per query and reuse it across every row.
type ValueMapper struct{}

// Map attempts to assign value into the pointer target, performing any necessary type negotiation. It returns false
// if target is not a settable pointer or if value's type could not be negotiated into it.
func (s ValueMapper) Map(value any, target any) bool {
	switch typedTarget := target.(type) {
	case *ID:
		if negotiated, err := NewPropertyValue(value).Int64(); err == nil {
			*typedTarget = ID(negotiated)
			return true
		}

		return false

	case *Node:
		if node, ok := value.(*Node); ok {
			*typedTarget = *node
			return true
		}

		return false

	case **Node:
		if node, ok := value.(*Node); ok {
			*typedTarget = node
			return true
		}

		return false

	case *Relationship:
		if rel, ok := value.(*Relationship); ok {
			*typedTarget = *rel
			return true
		}

		return false

	case **Relationship:
		if rel, ok := value.(*Relationship); ok {
			*typedTarget = rel
			return true
		}

		return false

	case *Kinds:
		switch typedValue := value.(type) {
		case Kinds:
			*typedTarget = typedValue
			return true
		case []string:
			*typedTarget = StringsToKinds(typedValue)
			return true
		}

		return false

	case *string:
		if negotiated, err := NewPropertyValue(value).String(); err == nil {
			*typedTarget = negotiated
			return true
		}

		return false

	case *int64:
		if negotiated, err := NewPropertyValue(value).Int64(); err == nil {
			*typedTarget = negotiated
			return true
		}

		return false

	case *int:
		if negotiated, err := NewPropertyValue(value).Int(); err == nil {
			*typedTarget = negotiated
			return true
		}

		return false

	case *float64:
		if negotiated, err := NewPropertyValue(value).Float64(); err == nil {
			*typedTarget = negotiated
			return true
		}

		return false

	case *bool:
		if negotiated, err := NewPropertyValue(value).Bool(); err == nil {
			*typedTarget = negotiated
			return true
		}

		return false

	case *time.Time:
		if negotiated, err := NewPropertyValue(value).Time(); err == nil {
			*typedTarget = negotiated
			return true
		}

		return false

	case *any:
		*typedTarget = value
		return true

	default:
		return s.mapReflected(value, target)
	}
}

// mapReflected handles the remaining scalar pointer kinds not worth an explicit case above (e.g. uint64, int32).
func (s ValueMapper) mapReflected(value any, target any) bool {
	targetVal := reflect.ValueOf(target)

	if targetVal.Kind() != reflect.Pointer || targetVal.IsNil() {
		return false
	}

	elem := targetVal.Elem()
	negotiated := NewPropertyValue(value)

	switch elem.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if converted, err := negotiated.Uint64(); err == nil {
			elem.SetUint(converted)
			return true
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if converted, err := negotiated.Int64(); err == nil {
			elem.SetInt(converted)
			return true
		}

	case reflect.Float32, reflect.Float64:
		if converted, err := negotiated.Float64(); err == nil {
			elem.SetFloat(converted)
			return true
		}
	}

	return false
}

// MapAll applies Map across parallel values/targets slices, short-circuiting on the first failed negotiation.
func (s ValueMapper) MapAll(values []any, targets []any) bool {
	if len(values) != len(targets) {
		return false
	}

	for idx, value := range values {
		if !s.Map(value, targets[idx]) {
			return false
		}
	}

	return true
}
