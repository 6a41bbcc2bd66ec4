package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coffee-orders/internal/auth"
	"coffee-orders/internal/config"
	httptransport "coffee-orders/internal/transport/http"
)

// NewRouter builds the gateway: open health probe, optionally the dev
// token endpoint, and an authenticated reverse proxy for everything
// else.
func NewRouter(cfg config.GatewayConfig, rl config.RateLimitConfig, authority *auth.Authority, log *zap.SugaredLogger) (*gin.Engine, error) {
	proxy, err := NewProxy(cfg.Routes, log)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httptransport.LoggingMiddleware(log))
	r.Use(httptransport.RequestIDMiddleware())
	if rl.RPS > 0 {
		r.Use(httptransport.RateLimitMiddleware(rl.RPS, rl.Burst))
	}

	r.GET("/health", httptransport.HealthHandler("gateway"))

	if cfg.DevTokens {
		log.Warn("dev token endpoint enabled; do not run this in production")
		r.POST("/dev/token", devTokenHandler(authority))
	}

	r.NoRoute(AuthMiddleware(authority), proxy.Handle)
	return r, nil
}

type devTokenReq struct {
	Subject string `json:"subject"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// devTokenHandler mints a token for whoever asks. Body fields are
// optional and default to the demo identity.
func devTokenHandler(authority *auth.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := devTokenReq{Subject: "demo-user", Name: "Demo User", Role: "user"}
		_ = c.ShouldBindJSON(&req)
		if req.Subject == "" {
			req.Subject = "demo-user"
		}
		token, err := authority.Issue(req.Subject, req.Name, req.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": token})
	}
}

// AuthMiddleware rejects the request before any backend is contacted
// unless it carries a valid bearer token.
func AuthMiddleware(authority *auth.Authority) gin.HandlerFunc {
	const prefix = "Bearer "
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := authority.Verify(strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}
