package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns the cross-origin middleware. "*" or an empty list allows any
// origin; otherwise only the listed origins (wildcards such as
// https://*.example.com included) are accepted.
func CORS(allowOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-API-Key", HeaderXRequestID},
		ExposeHeaders: []string{HeaderXRequestID},
		AllowWildcard: true,
		MaxAge:        24 * time.Hour,
	}

	cfg.AllowAllOrigins = len(allowOrigins) == 0
	for _, o := range allowOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = allowOrigins
	}

	return cors.New(cfg)
}
