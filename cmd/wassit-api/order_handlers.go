package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wassitdz/wassit-api/internal/httpx"
	"github.com/wassitdz/wassit-api/internal/mailer"
	"github.com/wassitdz/wassit-api/internal/order"
	"github.com/wassitdz/wassit-api/internal/pricing"
	"github.com/wassitdz/wassit-api/internal/realtime"
	"github.com/wassitdz/wassit-api/internal/storage"
	"github.com/wassitdz/wassit-api/internal/wilaya"
)

var errMissingFields = errors.New("all fields are required, including the screenshot and terms consent")

// createOrderHandler is the intake flow: validate everything before any
// collaborator call, upload the screenshot, insert the order with
// recomputed pricing, then notify out of band.
// @Summary Submit an order
// @Accept mpfd
// @Produce json
// @Success 201 {object} order.Order
// @Failure 400 {object} order.HTTPError
// @Router /api/orders [post]
func createOrderHandler(repo order.Repository, store storage.Uploader, broker *realtime.Broker, notifier mailer.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form order.CreateOrderForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMissingFields.Error()})
			return
		}
		file, err := c.FormFile("screenshot")

		form.PostalCode = pricing.SanitizePostalCode(form.PostalCode)
		if form.ProductURL == "" || form.Color == "" || form.Size == "" ||
			form.PriceUSD == "" || form.Wilaya == "" || form.PhoneNumber == "" ||
			form.PostalCode == "" || err != nil || !form.AgreedToTerms {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMissingFields.Error()})
			return
		}
		if u, err := url.Parse(form.ProductURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_url must be a valid http(s) URL"})
			return
		}
		if !wilaya.Valid(form.Wilaya) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown wilaya"})
			return
		}
		priceUSD, err := decimal.NewFromString(form.PriceUSD)
		if err != nil || !priceUSD.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_usd must be a positive decimal"})
			return
		}
		breakdown, err := pricing.Quote(priceUSD)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		uid := c.GetString(httpx.KeyUserID)
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer src.Close()

		path := storage.ScreenshotPath(uid, file.Filename, time.Now())
		screenshotURL, err := store.Upload(c.Request.Context(), path, src, file.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		o := &order.Order{
			ID:            uuid.NewString(),
			UserID:        uid,
			UserEmail:     c.GetString(httpx.KeyEmail),
			ProductURL:    form.ProductURL,
			Color:         form.Color,
			Size:          form.Size,
			PriceUSD:      priceUSD.String(),
			PriceDZD:      breakdown.PriceDZD,
			CommissionDZD: breakdown.CommissionDZD,
			TotalDZD:      breakdown.TotalDZD,
			Wilaya:        form.Wilaya,
			PhoneNumber:   form.PhoneNumber,
			PostalCode:    form.PostalCode,
			ScreenshotURL: screenshotURL,
			Status:        order.StatusPending,
			AgreedToTerms: true,
			CreatedAt:     time.Now().UTC(),
		}
		if err := repo.Create(c.Request.Context(), o); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		broker.Publish("orders", realtime.EventInsert, o.ID)

		// fire-and-forget: a failed notification never blocks the order
		go func(id, email string, total int64) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := notifier.NotifyNewOrder(ctx, id, email, total); err != nil {
				log.Printf("[mail] order %s notification failed: %v", id, err)
			}
		}(o.ID, o.UserEmail, o.TotalDZD)

		c.JSON(http.StatusCreated, o)
	}
}

// listMyOrdersHandler returns the caller's orders, newest first.
// @Summary Order history
// @Produce json
// @Success 200 {object} order.ListResponse
// @Router /api/orders [get]
func listMyOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.ListByUser(c.Request.Context(), c.GetString(httpx.KeyUserID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order.ListResponse{Items: items})
	}
}

// fetchOwnedOrder loads an order visible to the caller: the owner or an
// admin. Anything else reads as not found.
func fetchOwnedOrder(c *gin.Context, repo order.Repository) (*order.Order, bool) {
	o, err := repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": order.ErrNotFound.Error()})
		return nil, false
	}
	isAdmin := c.GetString(httpx.KeyRole) == "admin"
	if o.UserID != c.GetString(httpx.KeyUserID) && !isAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": order.ErrNotFound.Error()})
		return nil, false
	}
	return o, true
}

// getOrderHandler returns one order for its owner or an admin.
// @Summary Order detail
// @Produce json
// @Success 200 {object} order.Order
// @Failure 404 {object} order.HTTPError
// @Router /api/orders/{id} [get]
func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := fetchOwnedOrder(c, repo)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// getCheckoutHandler serves the payment instructions for one order.
// A missing order is a plain 404; the client falls back to its dashboard.
// @Summary Checkout instructions
// @Produce json
// @Success 200 {object} order.CheckoutResponse
// @Failure 404 {object} order.HTTPError
// @Router /api/orders/{id}/checkout [get]
func getCheckoutHandler(repo order.Repository, paymentAccountRIP string) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := fetchOwnedOrder(c, repo)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, order.CheckoutResponse{
			Order:             o,
			PaymentAccountRIP: paymentAccountRIP,
			AmountDueDZD:      o.TotalDZD,
		})
	}
}

// submitPaymentHandler is the checkout confirmation: upload the proof,
// then one write setting the proof URL and Paid status while
// re-persisting the stored total unchanged.
// @Summary Confirm payment
// @Accept mpfd
// @Produce json
// @Success 200 {object} order.Order
// @Failure 400 {object} order.HTTPError
// @Router /api/orders/{id}/payment [post]
func submitPaymentHandler(repo order.Repository, store storage.Uploader, broker *realtime.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := fetchOwnedOrder(c, repo)
		if !ok {
			return
		}
		file, err := c.FormFile("proof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment proof file is required"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer src.Close()

		path := storage.PaymentProofPath(o.UserID, o.ID, file.Filename, time.Now())
		proofURL, err := store.Upload(c.Request.Context(), path, src, file.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if err := repo.AttachPaymentProof(c.Request.Context(), o.ID, proofURL, o.TotalDZD); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		broker.Publish("orders", realtime.EventUpdate, o.ID)

		o.PaymentProofURL = proofURL
		o.Status = order.StatusPaid
		c.JSON(http.StatusOK, o)
	}
}
