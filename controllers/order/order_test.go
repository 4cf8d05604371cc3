package orderControllers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/hamzatariq-git/shopmate-api/controllers/order"
	"github.com/hamzatariq-git/shopmate-api/models"
	"github.com/hamzatariq-git/shopmate-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func cashOrderRouter(svc *fakeOrderService, userID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders/:id", func(c *gin.Context) {
		c.Set("user_id", userID.Hex())
		c.Next()
	}, orderControllers.CreateCashOrderHandler(svc))
	return r
}

func TestCreateCashOrderHandler(t *testing.T) {
	svc := &fakeOrderService{}
	userID := primitive.NewObjectID()
	cartID := primitive.NewObjectID().Hex()
	r := cashOrderRouter(svc, userID)

	body := []byte(`{"shippingAddress": {"street": "1 Main St", "city": "Cairo", "phone": "0100"}}`)
	req := httptest.NewRequest(http.MethodPost, "/orders/"+cartID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"message":"success"`)

	require.Len(t, svc.cashCalls, 1)
	call := svc.cashCalls[0]
	assert.Equal(t, cartID, call.cartID)
	assert.Equal(t, userID, call.userID)
	assert.Equal(t, models.Address{Street: "1 Main St", City: "Cairo", Phone: "0100"}, call.addr)
}

func TestCreateCashOrderHandlerMissingAddress(t *testing.T) {
	svc := &fakeOrderService{}
	r := cashOrderRouter(svc, primitive.NewObjectID())

	req := httptest.NewRequest(http.MethodPost, "/orders/"+primitive.NewObjectID().Hex(), bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.cashCalls)
}

func TestCreateCashOrderHandlerCartNotFound(t *testing.T) {
	svc := &fakeOrderService{cashErr: storage.ErrCartNotFound}
	r := cashOrderRouter(svc, primitive.NewObjectID())

	body := []byte(`{"shippingAddress": {"street": "1 Main St", "city": "Cairo", "phone": "0100"}}`)
	req := httptest.NewRequest(http.MethodPost, "/orders/"+primitive.NewObjectID().Hex(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
