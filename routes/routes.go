package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hamzatariq-git/shopmate-api/config"
	"github.com/hamzatariq-git/shopmate-api/services"
	"github.com/hamzatariq-git/shopmate-api/storage"
)

// Deps carries the constructed services and repositories the route groups
// wire handlers to.
type Deps struct {
	Cfg      *config.Config
	Orders   services.OrderService
	Carts    services.CartService
	Users    storage.UserStorage
	Products storage.ProductStorage
	Events   storage.WebhookEventStorage
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// Product catalogue (public reads, admin writes)
	SetupProductRoutes(r, deps)

	// Cart routes (JWT-protected)
	SetupCartRoutes(r, deps)

	// Order + checkout routes
	SetupOrderRoutes(r, deps)

	// Payment provider webhook
	SetupPaymentRoutes(r, deps)
}
