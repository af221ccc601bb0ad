package graph

import (
	"encoding/binary"
	"fmt"
	"sort"
	"time"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/specterops/geoidx/util/size"
)

// propertyValue is the concrete PropertyValue implementation returned by Properties accessors. It wraps a raw
// property value and negotiates type conversions on demand rather than eagerly, matching how property values
// arrive off the wire from either driver (arbitrary JSON-ish any values).
type propertyValue struct {
	value any
}

// NewPropertyValue wraps a raw value in the PropertyValue negotiation interface.
func NewPropertyValue(value any) PropertyValue {
	return propertyValue{value: value}
}

func (s propertyValue) IsNil() bool {
	return s.value == nil
}

func (s propertyValue) Any() any {
	return s.value
}

func (s propertyValue) Bool() (bool, error) {
	switch typed := s.value.(type) {
	case bool:
		return typed, nil
	case nil:
		return false, ErrPropertyNotFound
	default:
		return false, newConversionError(s.value, "bool")
	}
}

func (s propertyValue) Int() (int, error) {
	if val, err := s.Int64(); err != nil {
		return 0, err
	} else {
		return int(val), nil
	}
}

func (s propertyValue) Int64() (int64, error) {
	switch typed := s.value.(type) {
	case int:
		return int64(typed), nil
	case int8:
		return int64(typed), nil
	case int16:
		return int64(typed), nil
	case int32:
		return int64(typed), nil
	case int64:
		return typed, nil
	case uint:
		return int64(typed), nil
	case uint8:
		return int64(typed), nil
	case uint16:
		return int64(typed), nil
	case uint32:
		return int64(typed), nil
	case uint64:
		return int64(typed), nil
	case float32:
		return int64(typed), nil
	case float64:
		return int64(typed), nil
	case nil:
		return 0, ErrPropertyNotFound
	default:
		return 0, newConversionError(s.value, "int64")
	}
}

func (s propertyValue) Int64Slice() ([]int64, error) {
	switch typed := s.value.(type) {
	case []int64:
		return typed, nil
	case []any:
		out := make([]int64, len(typed))

		for idx, element := range typed {
			if converted, err := NewPropertyValue(element).Int64(); err != nil {
				return nil, err
			} else {
				out[idx] = converted
			}
		}

		return out, nil
	case nil:
		return nil, ErrPropertyNotFound
	default:
		return nil, newConversionError(s.value, "[]int64")
	}
}

func (s propertyValue) IDSlice() ([]ID, error) {
	if ints, err := s.Int64Slice(); err != nil {
		return nil, err
	} else {
		out := make([]ID, len(ints))

		for idx, next := range ints {
			out[idx] = ID(next)
		}

		return out, nil
	}
}

func (s propertyValue) StringSlice() ([]string, error) {
	switch typed := s.value.(type) {
	case []string:
		return typed, nil
	case []any:
		out := make([]string, len(typed))

		for idx, element := range typed {
			if converted, err := NewPropertyValue(element).String(); err != nil {
				return nil, err
			} else {
				out[idx] = converted
			}
		}

		return out, nil
	case nil:
		return nil, ErrPropertyNotFound
	default:
		return nil, newConversionError(s.value, "[]string")
	}
}

func (s propertyValue) Float64Slice() ([]float64, error) {
	switch typed := s.value.(type) {
	case []float64:
		return typed, nil
	case []any:
		out := make([]float64, len(typed))

		for idx, element := range typed {
			if converted, err := NewPropertyValue(element).Float64(); err != nil {
				return nil, err
			} else {
				out[idx] = converted
			}
		}

		return out, nil
	case nil:
		return nil, ErrPropertyNotFound
	default:
		return nil, newConversionError(s.value, "[]float64")
	}
}

func (s propertyValue) Uint64() (uint64, error) {
	if val, err := s.Int64(); err != nil {
		return 0, err
	} else {
		return uint64(val), nil
	}
}

func (s propertyValue) Float64() (float64, error) {
	switch typed := s.value.(type) {
	case float32:
		return float64(typed), nil
	case float64:
		return typed, nil
	case int:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	case nil:
		return 0, ErrPropertyNotFound
	default:
		return 0, newConversionError(s.value, "float64")
	}
}

func (s propertyValue) String() (string, error) {
	switch typed := s.value.(type) {
	case string:
		return typed, nil
	case nil:
		return "", ErrPropertyNotFound
	default:
		return "", newConversionError(s.value, "string")
	}
}

func (s propertyValue) Time() (time.Time, error) {
	switch typed := s.value.(type) {
	case time.Time:
		return typed, nil
	case string:
		return time.Parse(time.RFC3339Nano, typed)
	case nil:
		return time.Time{}, ErrPropertyNotFound
	default:
		return time.Time{}, newConversionError(s.value, "time.Time")
	}
}

// Properties is a mutable bag of named values attached to a Node or Relationship. Writes are tracked against two
// shadow sets, Modified and Deleted, so that a driver can emit a minimal update statement instead of rewriting
// every property on every save.
type Properties struct {
	Map      map[string]any
	Modified map[string]struct{}
	Deleted  map[string]struct{}
}

// NewProperties returns an empty Properties instance. The backing map is allocated lazily on first Set.
func NewProperties() *Properties {
	return &Properties{
		Modified: map[string]struct{}{},
		Deleted:  map[string]struct{}{},
	}
}

func (s *Properties) ensureMap() {
	if s.Map == nil {
		s.Map = map[string]any{}
	}
}

// MapOrEmpty returns the backing value map, or an empty map if nothing has been set yet.
func (s *Properties) MapOrEmpty() map[string]any {
	if s.Map == nil {
		return map[string]any{}
	}

	return s.Map
}

// Len returns the number of properties currently set.
func (s *Properties) Len() int {
	return len(s.Map)
}

// Exists returns true if the given key currently has a value set.
func (s *Properties) Exists(key string) bool {
	_, found := s.Map[key]
	return found
}

// Get returns the value at key, or a nil PropertyValue if it is unset.
func (s *Properties) Get(key string) PropertyValue {
	return NewPropertyValue(s.Map[key])
}

// GetOrDefault returns the value at key, or defaultValue if it is unset.
func (s *Properties) GetOrDefault(key string, defaultValue any) PropertyValue {
	if value, found := s.Map[key]; found {
		return NewPropertyValue(value)
	}

	return NewPropertyValue(defaultValue)
}

// GetWithFallback returns the value at key; if unset, it tries each fallback key in order; if none are set it
// returns defaultValue.
func (s *Properties) GetWithFallback(key string, defaultValue any, fallbackKeys ...string) PropertyValue {
	if value, found := s.Map[key]; found {
		return NewPropertyValue(value)
	}

	for _, fallbackKey := range fallbackKeys {
		if value, found := s.Map[fallbackKey]; found {
			return NewPropertyValue(value)
		}
	}

	return NewPropertyValue(defaultValue)
}

// Set assigns value to key and marks key as modified.
func (s *Properties) Set(key string, value any) *Properties {
	s.ensureMap()

	s.Map[key] = value
	s.Modified[key] = struct{}{}
	delete(s.Deleted, key)

	return s
}

// SetAll assigns every entry of values, marking each key as modified.
func (s *Properties) SetAll(values map[string]any) *Properties {
	for key, value := range values {
		s.Set(key, value)
	}

	return s
}

// Delete removes key from the property set and marks it for deletion if it previously existed.
func (s *Properties) Delete(key string) {
	if _, found := s.Map[key]; found {
		delete(s.Map, key)
		s.Deleted[key] = struct{}{}
	}

	delete(s.Modified, key)
}

// ModifiedProperties returns the subset of the backing map whose keys were touched by Set since creation.
func (s *Properties) ModifiedProperties() map[string]any {
	modified := make(map[string]any, len(s.Modified))

	for key := range s.Modified {
		if value, found := s.Map[key]; found {
			modified[key] = value
		}
	}

	return modified
}

// DeletedProperties returns the sorted list of keys marked for deletion.
func (s *Properties) DeletedProperties() []string {
	if len(s.Deleted) == 0 {
		return nil
	}

	deleted := make([]string, 0, len(s.Deleted))

	for key := range s.Deleted {
		deleted = append(deleted, key)
	}

	sort.Strings(deleted)
	return deleted
}

// Keys returns the sorted list of set property keys, excluding any present in ignore.
func (s *Properties) Keys(ignore map[string]struct{}) []string {
	keys := make([]string, 0, len(s.Map))

	for key := range s.Map {
		if _, skip := ignore[key]; !skip {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)
	return keys
}

// Clone returns a deep-enough copy of this Properties suitable for independent mutation.
func (s *Properties) Clone() *Properties {
	clone := NewProperties()

	for key, value := range s.Map {
		clone.Set(key, value)
	}

	return clone
}

// Merge copies every value from other into this Properties, overwriting on key collision.
func (s *Properties) Merge(other *Properties) {
	if other == nil {
		return
	}

	for key, value := range other.MapOrEmpty() {
		s.Set(key, value)
	}
}

// Hash returns a deterministic digest of the property set, order-independent, excluding any key in ignore.
func (s *Properties) Hash(ignore map[string]struct{}) ([]byte, error) {
	var (
		keys   = s.Keys(ignore)
		h      = xxhash.New()
		lenbuf [binary.MaxVarintLen64]byte
	)

	writeFramed := func(value string) error {
		n := binary.PutUvarint(lenbuf[:], uint64(len(value)))

		if _, err := h.Write(lenbuf[:n]); err != nil {
			return fmt.Errorf("writing length prefix: %w", err)
		}

		if _, err := h.Write([]byte(value)); err != nil {
			return fmt.Errorf("writing value to hash: %w", err)
		}

		return nil
	}

	for _, key := range keys {
		if err := writeFramed(key); err != nil {
			return nil, err
		}

		var valueStr string

		if converted, err := s.Get(key).String(); err == nil {
			valueStr = converted
		} else {
			valueStr = fmt.Sprintf("%v", s.Map[key])
		}

		if err := writeFramed(valueStr); err != nil {
			return nil, err
		}
	}

	sum := h.Sum64()
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, sum)

	return buf, nil
}

// SizeOf returns an approximation of the in-memory footprint of this Properties instance.
func (s *Properties) SizeOf() size.Size {
	propSize := size.Of(s)

	for key, value := range s.Map {
		propSize += size.Size(len(key)) + size.Size(unsafe.Sizeof(value))
	}

	propSize += size.Size(len(s.Modified)) * size.Size(unsafe.Sizeof(struct{}{}))
	propSize += size.Size(len(s.Deleted)) * size.Size(unsafe.Sizeof(struct{}{}))

	return propSize
}
