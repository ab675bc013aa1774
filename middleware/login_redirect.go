package middleware

import (
	"net/http"
	"net/url"

	"github.com/ink-point/api-go/utils"

	"github.com/gin-gonic/gin"
)

// LoginRedirectMiddleware guards the browser-flow routes (feed, follow,
// unfollow). Anonymous requests are redirected to the login page with a
// return path instead of getting a bare 401.
func LoginRedirectMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userClaims, err := parseClaims(c)
		if err != nil {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), userClaims)
		c.Next()
	}
}
