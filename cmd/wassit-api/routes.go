package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/wassitdz/wassit-api/docs"
	"github.com/wassitdz/wassit-api/internal/complaint"
	"github.com/wassitdz/wassit-api/internal/config"
	"github.com/wassitdz/wassit-api/internal/httpx"
	"github.com/wassitdz/wassit-api/internal/mailer"
	"github.com/wassitdz/wassit-api/internal/order"
	"github.com/wassitdz/wassit-api/internal/realtime"
	"github.com/wassitdz/wassit-api/internal/storage"
	"github.com/wassitdz/wassit-api/internal/user"
	"github.com/wassitdz/wassit-api/internal/wilaya"
)

type app struct {
	cfg        config.Config
	users      *user.Service
	orders     order.Repository
	complaints complaint.Repository
	store      storage.Uploader
	notifier   mailer.Notifier
	broker     *realtime.Broker
}

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.POST("/auth/register", registerHandler(a.users))
	api.POST("/auth/login", loginHandler(a.users))
	api.GET("/wilayas", listWilayasHandler())

	authed := api.Group("/", httpx.Auth(a.users))
	authed.GET("/auth/session", sessionHandler())
	authed.POST("/auth/logout", logoutHandler())

	authed.POST("/orders", createOrderHandler(a.orders, a.store, a.broker, a.notifier))
	authed.GET("/orders", listMyOrdersHandler(a.orders))
	authed.GET("/orders/:id", getOrderHandler(a.orders))
	authed.GET("/orders/:id/checkout", getCheckoutHandler(a.orders, a.cfg.PaymentAccountRIP))
	authed.POST("/orders/:id/payment", submitPaymentHandler(a.orders, a.store, a.broker))

	authed.POST("/complaints", createComplaintHandler(a.complaints, a.store, a.broker))
	authed.GET("/complaints", listMyComplaintsHandler(a.complaints))

	admin := authed.Group("/admin", httpx.RequireAdmin())
	admin.GET("/orders", adminListOrdersHandler(a.orders))
	admin.PUT("/orders/:id/status", adminUpdateStatusHandler(a.orders, a.broker))
	admin.PUT("/orders/:id/tracking", adminSetTrackingHandler(a.orders, a.broker))
	admin.GET("/complaints", adminListComplaintsHandler(a.complaints))
	admin.PUT("/complaints/:id", adminReviewComplaintHandler(a.complaints, a.broker))
	admin.GET("/events", adminEventsHandler(a.broker))

	return r
}

// listWilayasHandler serves the shared province reference list.
// @Summary Delivery provinces
// @Produce json
// @Success 200 {array} string
// @Router /api/wilayas [get]
func listWilayasHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": wilaya.List()})
	}
}
