package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIDMiddleware tags every request with a trace id, echoed in the
// response header and the response envelope.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("trace_id", id)
		c.Writer.Header().Set("X-Trace-ID", id)
		c.Next()
	}
}
