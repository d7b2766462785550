package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// NewRelicAttributesMiddleware tags the request's New Relic transaction with the
// route template and path parameters. It must run after nrgin.Middleware.
func NewRelicAttributesMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		txn := nrgin.Transaction(c)
		if txn == nil {
			c.Next()
			return
		}

		if route := c.FullPath(); route != "" {
			txn.SetName(c.Request.Method + " " + route)
		}
		for _, p := range c.Params {
			txn.AddAttribute("param."+p.Key, p.Value)
		}

		c.Next()

		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
		if userID, ok := c.Get(ContextUserID); ok {
			txn.AddAttribute("user.id", userID)
		}
	}
}
