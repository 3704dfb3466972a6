package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pay "github.com/zero3nine/AgriLinkWeb/internal/payment"
)

// Generic buyer-facing message; processor wire errors only go to the log.
const processorErrMsg = "We couldn't process your payment right now. Please check your card details or try again later."

func createPaymentIntentHandler(proc pay.Processor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req pay.CreateIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.Amount.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
			return
		}

		intent, err := proc.CreateIntent(c.Request.Context(), req.Amount)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": processorErrMsg})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
	}
}

func recordPaymentHandler(repo pay.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req pay.RecordPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.OrderID == "" || req.BuyerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order and buyerId are required"})
			return
		}
		if req.Amount.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
			return
		}

		p := &pay.Payment{
			ID:            uuid.NewString(),
			OrderID:       req.OrderID,
			BuyerID:       req.BuyerID,
			Amount:        req.Amount,
			Method:        req.Method,
			Status:        req.Status,
			TransactionID: req.TransactionID,
		}
		if p.Method == "" {
			p.Method = pay.MethodCard
		}
		if p.Status == "" {
			p.Status = pay.StatusPending
		}

		if err := repo.Record(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment recording failed"})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func publicKeyHandler(publishableKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if publishableKey == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "publishable key not configured"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"publishableKey": publishableKey})
	}
}
