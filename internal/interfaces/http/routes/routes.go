// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/checkout"
	"github.com/your-org/pos-terminal/internal/domain/orders"
	"github.com/your-org/pos-terminal/internal/infrastructure/backend"
	"github.com/your-org/pos-terminal/internal/interfaces/http/handlers"
)

// Dependencies holds everything the route handlers need
type Dependencies struct {
	Config       *config.Config
	CartStore    cart.Store
	CatalogCache *catalog.Cache
	OrderCache   *orders.Cache
	Orchestrator *checkout.Orchestrator
	Backend      *backend.Client
}

// SetupRoutes configures all API routes
func SetupRoutes(api *gin.RouterGroup, deps Dependencies) {
	catalogHandler := handlers.NewCatalogHandler(deps.CatalogCache, deps.Backend, deps.Config)
	cartHandler := handlers.NewCartHandler(deps.CartStore, deps.CatalogCache)
	ordersHandler := handlers.NewOrdersHandler(deps.OrderCache)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Orchestrator)

	// Catalog routes
	catalogGroup := api.Group("/catalog")
	{
		catalogGroup.GET("", catalogHandler.ListProducts)
		catalogGroup.POST("", catalogHandler.CreateProduct)
		catalogGroup.PUT("/:id/stock", catalogHandler.UpdateStock)
		catalogGroup.POST("/refresh", catalogHandler.RefreshCatalog)
	}

	// Cart routes
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.POST("/items/:index/increment", cartHandler.IncrementItem)
		cartGroup.POST("/items/:index/decrement", cartHandler.DecrementItem)
		cartGroup.DELETE("/items/:index", cartHandler.RemoveItem)
		cartGroup.PUT("/items/:index/price", cartHandler.OverridePrice)
	}

	// Checkout routes
	api.POST("/checkout", checkoutHandler.Checkout)
	api.GET("/checkout/status", checkoutHandler.Status)

	// Order routes
	ordersGroup := api.Group("/orders")
	{
		ordersGroup.GET("", ordersHandler.ListOrders)
		ordersGroup.POST("/refresh", ordersHandler.RefreshOrders)
	}
}
