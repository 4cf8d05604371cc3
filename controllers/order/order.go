package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hamzatariq-git/shopmate-api/models"
	"github.com/hamzatariq-git/shopmate-api/services"
	"github.com/hamzatariq-git/shopmate-api/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// -------- Request Structs --------

type shippingAddressRequest struct {
	ShippingAddress models.Address `json:"shippingAddress" binding:"required"`
}

// -------- Helpers --------

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, storage.ErrCartNotFound),
		errors.Is(err, storage.ErrOrderNotFound),
		errors.Is(err, storage.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// -------- Handlers --------

// Create a cash-on-delivery order from the cart in the path.
func CreateCashOrderHandler(orders services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req shippingAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := orders.CreateCashOrder(c.Request.Context(), c.Param("id"), userID, req.ShippingAddress)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		BroadcastNewOrder(*order)
		c.JSON(http.StatusCreated, gin.H{"message": "success", "order": order})
	}
}

// Fetch the caller's most recent order, products expanded.
func GetSpecificOrderHandler(orders services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		order, err := orders.GetSpecificOrder(c.Request.Context(), userID)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "success", "order": order})
	}
}

// Fetch every order in the store (admin).
func GetAllOrdersHandler(orders services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := orders.GetAllOrders(c.Request.Context())
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "success", "orders": all})
	}
}

// Create a hosted checkout session for the cart in the path. The client is
// expected to redirect to the returned session URL.
func CreateCheckoutSessionHandler(orders services.OrderService, users storage.UserStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req shippingAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		session, err := orders.CreateCheckoutSession(c.Request.Context(), c.Param("id"), user, req.ShippingAddress)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "success", "session": session})
	}
}
