package rest

import (
	"net/http"

	"github.com/Gunvolt24/shop/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// welcomeMessage — ответ корневого эндпоинта.
const welcomeMessage = "Welcome to Shop API"

// NewRouter — gin.Engine со служебными эндпоинтами и маршрутами каталога и заказов.
// serviceName != "" включает otelgin.
func NewRouter(h *Handler, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.CORS())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": welcomeMessage}) })
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "healthy"}) })
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	products := r.Group("/products")
	products.POST("", h.createProduct)
	products.GET("", h.listProducts)
	products.GET("/:id", h.getProductByID)

	orders := r.Group("/orders")
	orders.POST("", h.createOrder)
	orders.GET("/:user_id", h.listUserOrders)

	return r
}
