package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ord "github.com/zero3nine/AgriLinkWeb/internal/order"
	prod "github.com/zero3nine/AgriLinkWeb/internal/product"
)

// createOrderHandler is the checkout endpoint. The repo snapshots products
// and decrements their stock in one transaction; here we only validate the
// payload and drop the now-stale listing caches.
func createOrderHandler(repo ord.Repository, cache *prod.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "items are required"})
			return
		}
		if req.BuyerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "buyerName is required"})
			return
		}
		for _, it := range req.Items {
			if it.ProductID == "" || it.Qty.Sign() <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "each item needs a product id and a positive qty"})
				return
			}
		}

		o, err := repo.Create(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, ord.ErrProductMissing) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			return
		}

		sellers := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			sellers = append(sellers, it.SellerID)
		}
		cache.Invalidate(c.Request.Context(), sellers...)

		c.JSON(http.StatusCreated, o)
	}
}

// updateOrderStatusHandler moves an order to a new status and maintains the
// delivery assignment: Accepted with a deliveryId assigns the provider,
// Pending clears it.
func updateOrderStatusHandler(repo ord.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		status, err := ord.ParseStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		o, err := repo.GetByID(ctx, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		ord.ApplyTransition(o, status, req.DeliveryID)

		if err := repo.UpdateStatus(ctx, o); err != nil {
			if errors.Is(err, ord.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func listOrdersHandler(repo ord.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := ord.Filter{
			Status:     c.Query("status"),
			DeliveryID: c.Query("deliveryId"),
		}
		orders, err := repo.List(c.Request.Context(), f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []ord.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func listOrdersBySellerHandler(repo ord.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.ListBySeller(c.Request.Context(), c.Param("sellerId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []ord.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func listOrdersByDeliveryHandler(repo ord.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.ListByDelivery(c.Request.Context(), c.Param("deliveryId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []ord.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}
