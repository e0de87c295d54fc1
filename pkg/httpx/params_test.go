package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Gunvolt24/shop/pkg/httpx"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/products?"+rawQuery, http.NoBody)
	return c
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, httpx.ClampInt(0, 1, 100))
	assert.Equal(t, 100, httpx.ClampInt(101, 1, 100))
	assert.Equal(t, 42, httpx.ClampInt(42, 1, 100))
	assert.Equal(t, 1, httpx.ClampInt(1, 1, 100))
	assert.Equal(t, 100, httpx.ClampInt(100, 1, 100))
}

func TestParseLimitOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 10, 0},
		{"limit=25&offset=10", 25, 10},
		{"limit=1", 1, 0},
		{"offset=30", 10, 30},
		{"limit=0", 1, 0},
		{"limit=-5", 1, 0},
		{"limit=1000", 100, 0},
		{"limit=ten&offset=two", 10, 0},
		{"limit=10&offset=-3", 10, 0},
		{"limit=%2015%20&offset=%203", 15, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("q="+tt.query, func(t *testing.T) {
			t.Parallel()
			limit, offset := httpx.ParseLimitOffset(queryContext(tt.query), 10, 100)
			assert.Equal(t, tt.wantLimit, limit, "limit")
			assert.Equal(t, tt.wantOffset, offset, "offset")
		})
	}
}

func TestParseLimitOffset_DefaultIsClamped(t *testing.T) {
	limit, _ := httpx.ParseLimitOffset(queryContext(""), 500, 100)
	assert.Equal(t, 100, limit)

	limit, _ = httpx.ParseLimitOffset(queryContext(""), 0, 100)
	assert.Equal(t, 1, limit)
}

func TestTrimmedQuery(t *testing.T) {
	c := queryContext("name=%20Shirt%20&size=")

	assert.Equal(t, "Shirt", httpx.TrimmedQuery(c, "name"))
	assert.Empty(t, httpx.TrimmedQuery(c, "size"))
	assert.Empty(t, httpx.TrimmedQuery(c, "missing"))
}
