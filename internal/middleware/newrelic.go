package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// NewRelicErrors reports errors attached with c.Error on server-error
// responses to the request's New Relic transaction. It must run after
// nrgin.Middleware; without a transaction it does nothing.
func NewRelicErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError || len(c.Errors) == 0 {
			return
		}
		txn := nrgin.Transaction(c)
		if txn == nil {
			return
		}

		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
		if id := c.Param("id"); id != "" {
			txn.AddAttribute("entityId", id)
		}
	}
}
