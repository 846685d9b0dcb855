package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/fund-router/internal/common"
	"github.com/hxuan190/fund-router/internal/domain"
	"github.com/hxuan190/fund-router/internal/http/httputil"
)

const (
	CallerHeader = "X-Wallet-Address"
	callerKey    = "caller"
)

// CallerMiddleware records the caller identity from CallerHeader. A malformed
// identity is rejected; a missing one is allowed unless required is set.
func CallerMiddleware(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := strings.TrimSpace(c.GetHeader(CallerHeader))
		if caller == "" {
			if required {
				httputil.HandleError(c, common.HTTPErrorUnauthorized("missing "+CallerHeader+" header"))
				return
			}
			c.Next()
			return
		}

		if err := domain.ValidateAddress(caller); err != nil {
			httputil.HandleError(c, common.HTTPErrorBadRequest("invalid "+CallerHeader+" header"))
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// Caller returns the identity recorded by CallerMiddleware, or "".
func Caller(c *gin.Context) string {
	return c.GetString(callerKey)
}
