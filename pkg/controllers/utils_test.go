package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithQuery(t *testing.T, rawQuery string) *http.Request {
	t.Helper()

	u, err := url.Parse("/v1/devices?" + rawQuery)
	require.NoError(t, err)

	return &http.Request{URL: u}
}

func TestFilterQueryDefaults(t *testing.T) {
	params := FilterQuery(requestWithQuery(t, ""), resources.DeviceFilterableFields)

	assert.Equal(t, 25, params.PageSize)
	assert.Empty(t, params.NextBookmark)
	assert.Empty(t, params.Filters)
	assert.Empty(t, params.Sort.SortField)
}

func TestFilterQuerySortAndPagination(t *testing.T) {
	params := FilterQuery(requestWithQuery(t, "sort_by=name&sort_mode=desc&page_size=5&bookmark=abc"), resources.DeviceFilterableFields)

	assert.Equal(t, "name", params.Sort.SortField)
	assert.Equal(t, resources.SortModeDesc, params.Sort.SortMode)
	assert.Equal(t, 5, params.PageSize)
	assert.Equal(t, "abc", params.NextBookmark)
}

func TestFilterQueryIgnoresUnknownSortField(t *testing.T) {
	params := FilterQuery(requestWithQuery(t, "sort_by=not_a_column"), resources.DeviceFilterableFields)

	assert.Empty(t, params.Sort.SortField)
}

func TestFilterQueryStringFilter(t *testing.T) {
	params := FilterQuery(requestWithQuery(t, "filter="+url.QueryEscape("name[contains]greenhouse")), resources.DeviceFilterableFields)

	require.Len(t, params.Filters, 1)
	assert.Equal(t, "name", params.Filters[0].Field)
	assert.Equal(t, "greenhouse", params.Filters[0].Value)
	assert.Equal(t, resources.StringContains, params.Filters[0].FilterOperation)
}

func TestFilterQueryEnumAndDateFilters(t *testing.T) {
	q := "filter=" + url.QueryEscape("status[eq]ACTIVE") + "&filter=" + url.QueryEscape("last_seen[after]2026-01-01T00:00:00Z")
	params := FilterQuery(requestWithQuery(t, q), resources.DeviceFilterableFields)

	require.Len(t, params.Filters, 2)

	ops := map[string]resources.FilterOperation{}
	for _, f := range params.Filters {
		ops[f.Field] = f.FilterOperation
	}
	assert.Equal(t, resources.EnumEqual, ops["status"])
	assert.Equal(t, resources.DateAfter, ops["last_seen"])
}

func TestFilterQuerySkipsMalformedAndUnknownFilters(t *testing.T) {
	q := "filter=" + url.QueryEscape("name-missing-brackets") +
		"&filter=" + url.QueryEscape("nope[eq]x") +
		"&filter=" + url.QueryEscape("name[bogusop]x")
	params := FilterQuery(requestWithQuery(t, q), resources.DeviceFilterableFields)

	assert.Empty(t, params.Filters)
}

func TestFilterQueryNumberFilter(t *testing.T) {
	params := FilterQuery(requestWithQuery(t, "filter="+url.QueryEscape("growth_days[ge]90")), resources.CropFilterableFields)

	require.Len(t, params.Filters, 1)
	assert.Equal(t, resources.NumberGreaterOrEqualThan, params.Filters[0].FilterOperation)
	assert.Equal(t, "90", params.Filters[0].Value)
}
