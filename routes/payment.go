package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/hamzatariq-git/shopmate-api/controllers/order"
)

func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	payment := r.Group("/payment")
	{
		// Webhook endpoint: raw body, verified against the signing secret
		// inside the handler.
		payment.POST("/webhook", orderControllers.StripeWebhookHandler(deps.Cfg, deps.Events, deps.Orders))
	}
}
