package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// idempotencyNamespace seeds the deterministic ids derived from
// Idempotency-Key headers.
var idempotencyNamespace = uuid.MustParse("7d1f8a6e-0c3b-4f59-9d2a-5b8e4c7a1f03")

// newRowID returns the primary key for a create request. Without an
// Idempotency-Key header it is a fresh random id; with one, the id is
// derived deterministically from the resource and key, so a retried request
// lands on the same row and the ON CONFLICT insert path returns the
// original instead of duplicating it.
func newRowID(c *gin.Context, resource string) string {
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		return uuid.NewSHA1(idempotencyNamespace, []byte(resource+":"+key)).String()
	}
	return uuid.NewString()
}
