package main

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	prod "github.com/zero3nine/AgriLinkWeb/internal/product"
)

// createProductHandler handles the multipart form from the seller dashboard:
// name, price, stock, sellerId plus an optional image file.
func createProductHandler(repo prod.Repository, cache *prod.Cache, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req prod.CreateProductRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
			return
		}
		if req.Name == "" || req.Price == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		stock := decimal.Zero
		if req.Stock != "" {
			if stock, err = decimal.NewFromString(req.Stock); err != nil || stock.Sign() < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock"})
				return
			}
		}

		p := &prod.Product{
			ID:       uuid.NewString(),
			SellerID: req.SellerID,
			Name:     req.Name,
			Price:    price,
			Stock:    stock,
		}

		if file, err := c.FormFile("image"); err == nil {
			name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
			if err := c.SaveUploadedFile(file, filepath.Join(uploadsDir, name)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
				return
			}
			p.ImageURL = "/uploads/" + name
		}

		if err := repo.Create(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add product"})
			return
		}
		cache.Invalidate(c.Request.Context(), p.SellerID)
		c.JSON(http.StatusCreated, p)
	}
}

func listProductsHandler(repo prod.Repository, cache *prod.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if items, ok := cache.GetList(ctx, ""); ok {
			c.JSON(http.StatusOK, items)
			return
		}
		items, err := repo.List(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}
		if items == nil {
			items = []prod.Product{}
		}
		cache.SetList(ctx, "", items)
		c.JSON(http.StatusOK, items)
	}
}

func listProductsBySellerHandler(repo prod.Repository, cache *prod.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sellerID := c.Param("sellerId")
		if items, ok := cache.GetList(ctx, sellerID); ok {
			c.JSON(http.StatusOK, items)
			return
		}
		items, err := repo.ListBySeller(ctx, sellerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}
		if items == nil {
			items = []prod.Product{}
		}
		cache.SetList(ctx, sellerID, items)
		c.JSON(http.StatusOK, items)
	}
}

func getProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// updateProductHandler applies a full listing edit. A stock change always
// recomputes the status label; a stockStatus sent without a stock change is
// applied verbatim (that is the manual in/out-of-stock toggle path).
func updateProductHandler(repo prod.Repository, cache *prod.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req prod.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		ctx := c.Request.Context()
		p, err := repo.GetByID(ctx, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		if req.Name != "" {
			p.Name = req.Name
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		switch {
		case req.Stock != nil:
			if req.Stock.Sign() < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock"})
				return
			}
			p.Stock = *req.Stock
			p.StockStatus = prod.StatusFor(p.Stock)
		case req.StockStatus != "":
			p.StockStatus = req.StockStatus
		}

		if err := repo.Update(ctx, p); err != nil {
			if errors.Is(err, prod.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
			return
		}
		cache.Invalidate(ctx, p.SellerID)
		c.JSON(http.StatusOK, p)
	}
}

func setStockStatusHandler(repo prod.Repository, cache *prod.Cache, status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")
		if err := repo.SetStockStatus(ctx, id, status); err != nil {
			if errors.Is(err, prod.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update stock status"})
			return
		}
		p, err := repo.GetByID(ctx, id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		cache.Invalidate(ctx, p.SellerID)
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(repo prod.Repository, cache *prod.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sellerID := ""
		if p, err := repo.GetByID(ctx, c.Param("id")); err == nil {
			sellerID = p.SellerID
		}
		ok, err := repo.Delete(ctx, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		cache.Invalidate(ctx, sellerID)
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
