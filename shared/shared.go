package shared

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"dashboard/shared/cache"
	"dashboard/shared/constant"
	"dashboard/shared/dto"
	"dashboard/shared/timezone"
	"encoding/hex"
	"encoding/json"
	"math"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
// Nil and zero fields are skipped, pointers are dereferenced and untagged
// struct pointers are flattened into the same map.
func TransformFields(data interface{}, username string) map[string]any {
	updatedFields := make(map[string]any)

	collectFields(reflect.ValueOf(data), updatedFields)

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func collectFields(val reflect.Value, fields map[string]any) {
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return
		}

		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() || !typ.Field(index).IsExported() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			if field.Kind() == reflect.Pointer && field.Elem().Kind() == reflect.Struct {
				collectFields(field, fields)
			}

			continue
		}

		if fieldName == "-" {
			continue
		}

		for field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		if strs, ok := field.Interface().([]string); ok {
			fields[fieldName] = pq.StringArray(strs)

			continue
		}

		fields[fieldName] = field.Interface()
	}
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a cache prefix and identifying parts.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key for a list query from its
// paging parameters and filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	raw, err := json.Marshal(struct {
		Params dto.QueryParams
		Filter dto.FilterGroup
	}{params, filter})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key query")

		return BuildCacheKey(prefix, strconv.Itoa(params.Page), strconv.Itoa(params.Limit))
	}

	sum := sha1.Sum(raw) //nolint:gosec

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches drops every entry stored under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// EvictCache deletes key before returning so the next read goes to the
// store. The list prefixes are cleared in the background.
func EvictCache(ctx context.Context, redisCache cache.RedisCache, key string, prefixes ...string) {
	c := context.WithoutCancel(ctx)

	if err := redisCache.Delete(c, key); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("failed to delete cache entry")
	}

	go func() {
		for _, prefix := range prefixes {
			InvalidateCaches(c, redisCache, prefix)
		}
	}()
}

// HasUpdates reports whether data carries at least one column to update.
func HasUpdates(data any) bool {
	fields := make(map[string]any)
	collectFields(reflect.ValueOf(data), fields)

	return len(fields) > 0
}

// ParseDateFields replaces the string values of the given date columns with
// their parsed time. Values that do not parse are left untouched.
func ParseDateFields(fields map[string]any, columns ...string) map[string]any {
	for _, col := range columns {
		raw, ok := fields[col].(string)
		if !ok {
			continue
		}

		if parsed, err := timezone.ParseDate(raw); err == nil {
			fields[col] = parsed
		}
	}

	return fields
}

// PhotoObjectName names an uploaded photo after the record it belongs to,
// keeping the original extension.
func PhotoObjectName(key string, header *multipart.FileHeader) string {
	return key + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
}
