package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coffee-orders/internal/config"
)

// Proxy forwards requests verbatim to the backend whose path prefix
// matches. Longest prefix wins.
type Proxy struct {
	routes []proxyRoute
	log    *zap.SugaredLogger
}

type proxyRoute struct {
	prefix string
	rp     *httputil.ReverseProxy
}

func NewProxy(routes []config.Route, log *zap.SugaredLogger) (*Proxy, error) {
	p := &Proxy{log: log}
	for _, rt := range routes {
		target, err := url.Parse(rt.Backend)
		if err != nil {
			return nil, fmt.Errorf("route %q: parse backend: %w", rt.Prefix, err)
		}
		p.routes = append(p.routes, proxyRoute{
			prefix: rt.Prefix,
			rp:     httputil.NewSingleHostReverseProxy(target),
		})
	}
	sort.SliceStable(p.routes, func(i, j int) bool {
		return len(p.routes[i].prefix) > len(p.routes[j].prefix)
	})
	return p, nil
}

// Handle proxies the request or answers 404 when no prefix matches.
func (p *Proxy) Handle(c *gin.Context) {
	path := c.Request.URL.Path
	for _, rt := range p.routes {
		if strings.HasPrefix(path, rt.prefix) {
			rt.rp.ServeHTTP(c.Writer, c.Request)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "no route for " + path})
}
