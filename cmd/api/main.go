package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zero3nine/AgriLinkWeb/internal/config"
	"github.com/zero3nine/AgriLinkWeb/internal/httpx"
	"github.com/zero3nine/AgriLinkWeb/internal/order"
	"github.com/zero3nine/AgriLinkWeb/internal/payment"
	"github.com/zero3nine/AgriLinkWeb/internal/postgres"
	"github.com/zero3nine/AgriLinkWeb/internal/product"
	"github.com/zero3nine/AgriLinkWeb/internal/redisx"
	"github.com/zero3nine/AgriLinkWeb/internal/user"
)

type deps struct {
	products  product.Repository
	orders    order.Repository
	payments  payment.Repository
	users     user.Repository
	cache     *product.Cache
	processor payment.Processor

	publishableKey string
	uploadsDir     string
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Fatalf("uploads dir: %v", err)
	}

	d := &deps{
		products:       product.NewPGRepo(pool),
		orders:         order.NewPGRepo(pool),
		payments:       payment.NewPGRepo(pool),
		users:          user.NewPGRepo(pool),
		cache:          product.NewCache(redisx.New(ctx, cfg.RedisAddr)),
		processor:      payment.NewStripeClient(cfg.ProcessorKey, cfg.ProcessorURL),
		publishableKey: cfg.PublishableKey,
		uploadsDir:     cfg.UploadsDir,
	}

	r := newRouter(d)
	log.Printf("api listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}

func newRouter(d *deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), cors.Default())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.Static("/uploads", d.uploadsDir)

	r.POST("/products", createProductHandler(d.products, d.cache, d.uploadsDir))
	r.GET("/products", listProductsHandler(d.products, d.cache))
	r.GET("/products/:id", getProductHandler(d.products))
	r.GET("/products/seller/:sellerId", listProductsBySellerHandler(d.products, d.cache))
	r.PUT("/products/:id", updateProductHandler(d.products, d.cache))
	r.PATCH("/products/:id/in-stock", setStockStatusHandler(d.products, d.cache, product.InStock))
	r.PATCH("/products/:id/out-of-stock", setStockStatusHandler(d.products, d.cache, product.OutOfStock))
	r.DELETE("/products/:id", deleteProductHandler(d.products, d.cache))

	r.POST("/orders", createOrderHandler(d.orders, d.cache))
	r.GET("/orders", listOrdersHandler(d.orders))
	r.PATCH("/orders/:id", updateOrderStatusHandler(d.orders))
	r.GET("/orders/seller/:sellerId", listOrdersBySellerHandler(d.orders))
	r.GET("/orders/delivery/:deliveryId", listOrdersByDeliveryHandler(d.orders))

	r.POST("/payments/create-intent", createPaymentIntentHandler(d.processor))
	r.POST("/payments/record", recordPaymentHandler(d.payments))
	r.GET("/payments/public-key", publicKeyHandler(d.publishableKey))

	r.GET("/users/:id", getUserHandler(d.users))
	r.GET("/users", listUsersHandler(d.users))

	return r
}
