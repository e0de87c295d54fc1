package httpx

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimitOffset читает limit/offset из query: нечисловые значения заменяются дефолтами,
// limit ограничивается [1, maxLimit], отрицательный offset превращается в 0.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = ClampInt(defaultLimit, 1, maxLimit)
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("offset"))); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// TrimmedQuery — значение query-параметра без пробелов по краям ("" если нет).
func TrimmedQuery(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}
