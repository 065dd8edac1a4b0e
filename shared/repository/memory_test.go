package repository_test

import (
	"context"
	"dashboard/shared/dto"
	"dashboard/shared/failure"
	"dashboard/shared/repository"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guest struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	Name      string         `db:"name"`
	Nights    int            `db:"nights"`
	Note      *string        `db:"note"`
	Amenities pq.StringArray `db:"amenities"`
}

func seedMemory(t *testing.T) *repository.Memory[guest] {
	t.Helper()

	mem := repository.NewMemory[guest]("guest", "id", "email")
	ctx := context.Background()

	require.NoError(t, mem.Insert(ctx, guest{ID: "1", Email: "ana@example.com", Name: "Ana Lopez", Nights: 3}))
	require.NoError(t, mem.Insert(ctx, guest{ID: "2", Email: "ben@example.com", Name: "Ben Ortiz", Nights: 1}))
	require.NoError(t, mem.Insert(ctx, guest{ID: "3", Email: "cai@example.com", Name: "Cai Lopez", Nights: 7}))

	return mem
}

func eq(field string, value any) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: field, Value: value, Operator: dto.FilterOperatorEq}},
	}
}

func TestMemory_InsertUnique(t *testing.T) {
	mem := seedMemory(t)

	err := mem.Insert(context.Background(), guest{ID: "4", Email: "ana@example.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestMemory_Get(t *testing.T) {
	mem := seedMemory(t)

	got, err := mem.Get(context.Background(), eq("email", "ben@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)

	missing, err := mem.Get(context.Background(), eq("email", "nobody@example.com"))
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestMemory_GetAll(t *testing.T) {
	mem := seedMemory(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		params   dto.QueryParams
		filter   dto.FilterGroup
		expected []string
	}{
		{
			name:     "sorted descending",
			params:   dto.QueryParams{SortBy: "nights", SortDir: dto.SortDirDesc},
			expected: []string{"3", "1", "2"},
		},
		{
			name:     "paginated",
			params:   dto.QueryParams{Page: 2, Limit: 2, SortBy: "id", SortDir: dto.SortDirAsc},
			expected: []string{"3"},
		},
		{
			name:     "page past the end",
			params:   dto.QueryParams{Page: 5, Limit: 2},
			expected: []string{},
		},
		{
			name: "like filter",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters:  []any{dto.Filter{Field: "name", Value: "lopez", Operator: dto.FilterOperatorLike}},
			},
			expected: []string{"1", "3"},
		},
		{
			name: "or group",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "id", Value: "2", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "nights", Value: 7, Operator: dto.FilterOperatorGreaterEq},
				},
			},
			expected: []string{"2", "3"},
		},
		{
			name: "inclusive range",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "nights", Value: 2, Operator: dto.FilterOperatorGreaterEq},
					dto.Filter{Field: "nights", Value: 7, Operator: dto.FilterOperatorLessEq},
				},
			},
			expected: []string{"1", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mem.GetAll(ctx, tt.params, tt.filter)
			require.NoError(t, err)

			ids := []string{}
			for _, g := range got {
				ids = append(ids, g.ID)
			}

			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestMemory_Update(t *testing.T) {
	mem := seedMemory(t)
	ctx := context.Background()

	err := mem.Update(ctx, map[string]any{
		"note":      "late check-in",
		"amenities": []string{"wifi", "spa"},
		"nights":    4,
	}, eq("id", "1"))
	require.NoError(t, err)

	got, err := mem.Get(ctx, eq("id", "1"))
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	assert.Equal(t, "late check-in", *got.Note)
	assert.Equal(t, pq.StringArray{"wifi", "spa"}, got.Amenities)
	assert.Equal(t, 4, got.Nights)

	err = mem.Update(ctx, map[string]any{"email": "ben@example.com"}, eq("id", "1"))
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	require.Error(t, mem.Update(ctx, map[string]any{"unknown": 1}, eq("id", "1")))
	require.Error(t, mem.Update(ctx, map[string]any{}, eq("id", "1")))
}

func TestMemory_DeleteAndCount(t *testing.T) {
	mem := seedMemory(t)
	ctx := context.Background()

	require.NoError(t, mem.Delete(ctx, eq("id", "2")))

	count, err := mem.Count(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	exist, err := mem.Exist(ctx, eq("id", "2"))
	require.NoError(t, err)
	assert.False(t, exist)

	require.Error(t, mem.Delete(ctx, dto.FilterGroup{}))
}
