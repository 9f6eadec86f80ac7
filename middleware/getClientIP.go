package middleware

import (
	"net"
	"strings"

	"idvault/config"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the client address used for rate limiting and request
// logs. Forwarding headers are only honored when TRUST_PROXY_HEADERS is set,
// since anyone can send them directly.
func getClientIP(c *gin.Context) string {
	if config.AppConfig.TrustProxyHeaders {
		// X-Forwarded-For holds a comma-separated chain; the first entry is
		// the originating client.
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
				return first
			}
		}
		if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
			return xri
		}
	}

	// RemoteAddr is usually "ip:port".
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
