package dto

import (
	"dashboard/shared/failure"
	"dashboard/shared/timezone"
	"fmt"
	"maps"
	"net/url"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

const (
	QuerySearch     = "search"
	queryRangeFrom  = "_from"
	queryRangeTo    = "_to"
	searchArgPrefix = "search_"
)

// Filter compares one column against a value. ArgName defaults to Field and
// must be unique within a query.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like less_eq greater_eq"`
	Table    string
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	var comparison string

	switch f.Operator {
	case FilterOperatorEq:
		comparison = "%s = :%s"
	case FilterOperatorLike:
		args[argName] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, argName), args
	case FilterOperatorLessEq:
		comparison = "%s <= :%s"
	case FilterOperatorGreaterEq:
		comparison = "%s >= :%s"
	default:
		return "", args
	}

	args[argName] = f.Value

	return fmt.Sprintf(comparison, column, argName), args
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

// EqualsFromQuery adds an equality filter for each column given a non-empty
// value in query. Query parameters are named after the columns.
func EqualsFromQuery(query url.Values, table string, columns ...string) FilterGroup {
	group := FilterGroup{Operator: FilterGroupOperatorAnd, Filters: []any{}}

	for _, column := range columns {
		value := strings.TrimSpace(query.Get(column))
		if value == "" {
			continue
		}

		group.Filters = append(group.Filters, Filter{
			Field:    column,
			Operator: FilterOperatorEq,
			Value:    value,
			Table:    table,
		})
	}

	return group
}

// AddSearch requires the search query parameter to appear, ignoring case,
// in at least one of columns.
func (f *FilterGroup) AddSearch(query url.Values, table string, columns ...string) {
	term := strings.TrimSpace(query.Get(QuerySearch))
	if term == "" || len(columns) == 0 {
		return
	}

	search := FilterGroup{Operator: FilterGroupOperatorOr, Filters: make([]any, 0, len(columns))}

	for _, column := range columns {
		search.Filters = append(search.Filters, Filter{
			ArgName:  searchArgPrefix + column,
			Field:    column,
			Operator: FilterOperatorLike,
			Value:    term,
			Table:    table,
		})
	}

	f.Filters = append(f.Filters, search)
}

// AddDateRange bounds column by the <column>_from and <column>_to query
// parameters. Both bounds are inclusive and either may be left out.
func (f *FilterGroup) AddDateRange(query url.Values, table, column string) error {
	bounds := []struct {
		param    string
		operator string
	}{
		{column + queryRangeFrom, FilterOperatorGreaterEq},
		{column + queryRangeTo, FilterOperatorLessEq},
	}

	for _, bound := range bounds {
		raw := strings.TrimSpace(query.Get(bound.param))
		if raw == "" {
			continue
		}

		value, err := timezone.ParseDate(raw)
		if err != nil {
			return failure.BadRequestFromString(bound.param + " must be a valid date.") //nolint:wrapcheck
		}

		f.Filters = append(f.Filters, Filter{
			ArgName:  bound.param,
			Field:    column,
			Operator: bound.operator,
			Value:    value,
			Table:    table,
		})
	}

	return nil
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)
		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+f.Operator+" ")), args
}
