// README: Metrics middleware; counts responses per matched route.
package middleware

import "github.com/gin-gonic/gin"

type HTTPRecorder interface {
	RecordHTTP(method, route string, status int)
}

func Metrics(rec HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		rec.RecordHTTP(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
