package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination reads skip/limit query parameters with sane clamping. Limit
// defaults to 20 and is capped at maxLimit.
func Pagination(c *gin.Context, maxLimit int) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if skip < 0 {
		skip = 0
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}
