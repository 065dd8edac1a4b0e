package repository

import (
	"context"
	"dashboard/shared/dto"
	"dashboard/shared/failure"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"
)

var errUnsupportedOperator = errors.New("unsupported filter operator")

// Memory is an in-process store with the same method set as Repository.
// Columns are resolved from db tags, including embedded structs, and
// unique lists the columns that must not repeat across rows.
type Memory[T any] struct {
	mu      sync.RWMutex
	entitas string
	fields  map[string][]int
	unique  []string
	rows    []T
}

func NewMemory[T any](entitasName string, unique ...string) *Memory[T] {
	var zero T

	fields := map[string][]int{}
	indexFields(reflect.TypeOf(zero), nil, fields)

	return &Memory[T]{
		entitas: entitasName,
		fields:  fields,
		unique:  unique,
	}
}

func indexFields(t reflect.Type, parent []int, fields map[string][]int) {
	for i := range t.NumField() {
		field := t.Field(i)
		index := append(slices.Clone(parent), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			indexFields(field.Type, index, fields)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			fields[tag] = index
		}
	}
}

func (m *Memory[T]) Insert(_ context.Context, model T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkUnique(reflect.ValueOf(model), -1); err != nil {
		return err
	}

	m.rows = append(m.rows, model)

	return nil
}

func (m *Memory[T]) Get(_ context.Context, filter dto.FilterGroup, _ ...string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T

	for _, row := range m.rows {
		ok, err := m.match(reflect.ValueOf(row), filter)
		if err != nil {
			return zero, err
		}

		if ok {
			return row, nil
		}
	}

	return zero, nil
}

func (m *Memory[T]) GetAll(_ context.Context, params dto.QueryParams, filter dto.FilterGroup, _ ...string) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []T{}

	for _, row := range m.rows {
		ok, err := m.match(reflect.ValueOf(row), filter)
		if err != nil {
			return nil, err
		}

		if ok {
			res = append(res, row)
		}
	}

	if index, ok := m.fields[params.SortBy]; ok {
		desc := strings.EqualFold(params.SortDir, dto.SortDirDesc)

		slices.SortStableFunc(res, func(a, b T) int {
			cmp := compare(reflect.ValueOf(a).FieldByIndex(index), reflect.ValueOf(b).FieldByIndex(index))
			if desc {
				return -cmp
			}

			return cmp
		})
	}

	if params.Limit > 0 {
		offset := 0
		if params.Page > 0 {
			offset = (params.Page - 1) * params.Limit
		}

		if offset >= len(res) {
			return []T{}, nil
		}

		res = res[offset:min(offset+params.Limit, len(res))]
	}

	return res, nil
}

func (m *Memory[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	count, err := m.Count(ctx, filter)

	return count > 0, err
}

func (m *Memory[T]) Count(_ context.Context, filter dto.FilterGroup) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0

	for _, row := range m.rows {
		ok, err := m.match(reflect.ValueOf(row), filter)
		if err != nil {
			return 0, err
		}

		if ok {
			count++
		}
	}

	return count, nil
}

func (m *Memory[T]) Update(_ context.Context, mod map[string]any, filter dto.FilterGroup) error {
	if len(mod) == 0 {
		return errEmptyUpdate
	}

	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.rows {
		ok, err := m.match(reflect.ValueOf(m.rows[i]), filter)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		updated := reflect.New(reflect.TypeOf(m.rows[i])).Elem()
		updated.Set(reflect.ValueOf(m.rows[i]))

		for col, value := range mod {
			index, found := m.fields[col]
			if !found {
				return fmt.Errorf("failed to update data (%s): unknown column %q", m.entitas, col)
			}

			if err := assign(updated.FieldByIndex(index), value); err != nil {
				return fmt.Errorf("failed to update data (%s): column %q: %w", m.entitas, col, err)
			}
		}

		if err := m.checkUnique(updated, i); err != nil {
			return err
		}

		m.rows[i] = updated.Interface().(T) //nolint:forcetypeassert
	}

	return nil
}

func (m *Memory[T]) Delete(_ context.Context, filter dto.FilterGroup) error {
	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.rows[:0]

	for _, row := range m.rows {
		ok, err := m.match(reflect.ValueOf(row), filter)
		if err != nil {
			return err
		}

		if !ok {
			kept = append(kept, row)
		}
	}

	m.rows = kept

	return nil
}

func (m *Memory[T]) checkUnique(row reflect.Value, skip int) error {
	for _, col := range m.unique {
		index, ok := m.fields[col]
		if !ok {
			continue
		}

		value := row.FieldByIndex(index)

		for i, existing := range m.rows {
			if i == skip {
				continue
			}

			if compare(reflect.ValueOf(existing).FieldByIndex(index), value) == 0 {
				return failure.Conflict(fmt.Sprintf("%s already exists", m.entitas)) //nolint:wrapcheck
			}
		}
	}

	return nil
}

func (m *Memory[T]) match(row reflect.Value, group dto.FilterGroup) (bool, error) {
	if len(group.Filters) == 0 {
		return true, nil
	}

	or := strings.EqualFold(group.Operator, dto.FilterGroupOperatorOr)

	for _, item := range group.Filters {
		var (
			ok  bool
			err error
		)

		switch f := item.(type) {
		case dto.Filter:
			ok, err = m.matchFilter(row, f)
		case dto.FilterGroup:
			ok, err = m.match(row, f)
		default:
			continue
		}

		if err != nil {
			return false, err
		}

		if or && ok {
			return true, nil
		}

		if !or && !ok {
			return false, nil
		}
	}

	return !or, nil
}

func (m *Memory[T]) matchFilter(row reflect.Value, f dto.Filter) (bool, error) {
	index, ok := m.fields[f.Field]
	if !ok {
		return false, fmt.Errorf("failed to filter data (%s): unknown column %q", m.entitas, f.Field)
	}

	field := row.FieldByIndex(index)
	isNil := field.Kind() == reflect.Pointer && field.IsNil()

	switch f.Operator {
	case dto.FilterOperatorEq:
		return !isNil && compare(field, reflect.ValueOf(f.Value)) == 0, nil
	case dto.FilterOperatorLessEq:
		return !isNil && compare(field, reflect.ValueOf(f.Value)) <= 0, nil
	case dto.FilterOperatorGreaterEq:
		return !isNil && compare(field, reflect.ValueOf(f.Value)) >= 0, nil
	case dto.FilterOperatorLike:
		return !isNil && strings.Contains(
			strings.ToLower(fmt.Sprint(indirect(field).Interface())),
			strings.ToLower(fmt.Sprint(f.Value)),
		), nil
	default:
		return false, fmt.Errorf("%w: %s", errUnsupportedOperator, f.Operator)
	}
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}

// compare orders two values of comparable kinds. Mismatched kinds fall back
// to their formatted representation.
func compare(a, b reflect.Value) int {
	a, b = indirect(a), indirect(b)

	switch {
	case !a.IsValid() && !b.IsValid():
		return 0
	case !a.IsValid():
		return -1
	case !b.IsValid():
		return 1
	}

	if at, ok := a.Interface().(time.Time); ok {
		if bt, ok := b.Interface().(time.Time); ok {
			return at.Compare(bt)
		}
	}

	switch {
	case a.CanInt() && b.CanInt():
		return cmpOrdered(a.Int(), b.Int())
	case a.CanFloat() && b.CanFloat():
		return cmpOrdered(a.Float(), b.Float())
	case a.CanInt() && b.CanFloat():
		return cmpOrdered(float64(a.Int()), b.Float())
	case a.CanFloat() && b.CanInt():
		return cmpOrdered(a.Float(), float64(b.Int()))
	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return strings.Compare(a.String(), b.String())
	case a.Kind() == reflect.Bool && b.Kind() == reflect.Bool:
		if a.Bool() == b.Bool() {
			return 0
		}

		if !a.Bool() {
			return -1
		}

		return 1
	}

	return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func cmpOrdered[N int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// assign stores value into field, allocating pointers and converting
// between assignable kinds such as []string and pq.StringArray.
func assign(field reflect.Value, value any) error {
	if value == nil {
		field.Set(reflect.Zero(field.Type()))

		return nil
	}

	v := reflect.ValueOf(value)

	if field.Kind() == reflect.Pointer && v.Kind() != reflect.Pointer {
		ptr := reflect.New(field.Type().Elem())
		if err := assign(ptr.Elem(), value); err != nil {
			return err
		}

		field.Set(ptr)

		return nil
	}

	if field.Kind() != reflect.Pointer && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			field.Set(reflect.Zero(field.Type()))

			return nil
		}

		v = v.Elem()
	}

	switch {
	case v.Type().AssignableTo(field.Type()):
		field.Set(v)
	case v.Type().ConvertibleTo(field.Type()) && (v.Kind() == reflect.String) == (field.Kind() == reflect.String):
		field.Set(v.Convert(field.Type()))
	default:
		return fmt.Errorf("cannot assign %s to %s", v.Type(), field.Type())
	}

	return nil
}
