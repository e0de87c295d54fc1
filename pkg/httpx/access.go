package httpx

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/shop/internal/ports"
	"github.com/Gunvolt24/shop/pkg/metrics"
)

const unmatchedRoute = "unmatched"

// quietRoutes — служебные эндпоинты: в метриках есть, в логе нет.
var quietRoutes = map[string]bool{"/metrics": true, "/ping": true, "/health": true}

// RequestLogger — access-лог и HTTP-метрики по шаблону маршрута.
// request_id/trace_id логгер берёт из контекста сам.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method
		status := c.Writer.Status()

		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())

		if quietRoutes[route] {
			return
		}

		ctx := c.Request.Context()
		if len(c.Errors) > 0 {
			log.Warnf(ctx, "request method=%s path=%s status=%d errors=%s",
				method, c.Request.URL.Path, status, c.Errors.String())
		}
		log.Infof(ctx, "request method=%s route=%s path=%s status=%d ip=%s duration=%s size=%d",
			method, route, c.Request.URL.Path, status, c.ClientIP(), elapsed, c.Writer.Size())
	}
}
