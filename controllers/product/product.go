package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hamzatariq-git/shopmate-api/middleware"
	"github.com/hamzatariq-git/shopmate-api/models"
	"github.com/hamzatariq-git/shopmate-api/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GET /products
func GetProducts(products storage.ProductStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := products.GetAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, all)
	}
}

// GET /products/:id
func GetProductByID(products storage.ProductStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		product, err := products.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /products (admin). The upload middleware has already validated and
// saved the image; its path is read back from the context.
func CreateProduct(products storage.ProductStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		quantity := 0
		if q := c.PostForm("quantity"); q != "" {
			quantity, err = strconv.Atoi(q)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
				return
			}
		}

		product := &models.Product{
			Name:        name,
			Description: c.PostForm("description"),
			Price:       price,
			Quantity:    quantity,
			Image:       c.GetString(middleware.UploadedFileKey),
		}
		created, err := products.Create(c.Request.Context(), product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}
