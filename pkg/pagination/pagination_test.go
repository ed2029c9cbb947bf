package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
	p := FromRequest(req)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_CustomValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reviews?page=3&limit=50", nil)
	p := FromRequest(req)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 100, p.Offset) // (3-1) * 50
}

func TestFromRequest_InvalidPage(t *testing.T) {
	for _, page := range []string{"-1", "0", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/reviews?page="+page, nil)
		p := FromRequest(req)
		assert.Equal(t, 1, p.Page, page)
	}
}

func TestFromRequest_LimitMaxCap(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reviews?limit=200", nil)
	p := FromRequest(req)
	assert.Equal(t, 10, p.Limit) // falls back to default (200 > 100)
}

func TestFromRequest_LimitExactly100(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reviews?limit=100", nil)
	p := FromRequest(req)
	assert.Equal(t, 100, p.Limit)
}

func TestFromRequest_LimitZeroOrNegative(t *testing.T) {
	for _, limit := range []string{"0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/reviews?limit="+limit, nil)
		p := FromRequest(req)
		assert.Equal(t, 10, p.Limit, limit)
	}
}

func TestFromRequest_OffsetCalculation(t *testing.T) {
	tests := []struct {
		page   string
		limit  string
		offset int
	}{
		{"1", "10", 0},
		{"2", "10", 10},
		{"3", "25", 50},
		{"2", "5", 5},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/reviews?page="+tt.page+"&limit="+tt.limit, nil)
		p := FromRequest(req)
		assert.Equal(t, tt.offset, p.Offset)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int
		limit int
		pages int
	}{
		{0, 10, 1}, // empty set still has one page
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{12, 5, 3},
		{11, 5, 3}, // ceil(11/5)
		{5, 0, 1},  // degenerate limit
	}
	for _, tt := range tests {
		assert.Equal(t, tt.pages, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}
