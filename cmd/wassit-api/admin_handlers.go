package main

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wassitdz/wassit-api/internal/order"
	"github.com/wassitdz/wassit-api/internal/realtime"
)

// adminListOrdersHandler returns every order, newest first, optionally
// narrowed by the free-text query.
// @Summary Admin order listing
// @Produce json
// @Param q query string false "substring over email (case-insensitive), wilaya, phone"
// @Success 200 {object} order.ListResponse
// @Router /api/admin/orders [get]
func adminListOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		q := c.Query("q")
		c.JSON(http.StatusOK, order.ListResponse{Q: q, Items: order.Filter(items, q)})
	}
}

// adminUpdateStatusHandler writes any of the four status values directly;
// transitions are not validated by design.
// @Summary Admin status write
// @Accept json
// @Produce json
// @Param body body order.UpdateStatusRequest true "status"
// @Success 200 {object} order.Order
// @Failure 400 {object} order.HTTPError
// @Router /api/admin/orders/{id}/status [put]
func adminUpdateStatusHandler(repo order.Repository, broker *realtime.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !order.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of Pending, Paid, Purchased, Shipped"})
			return
		}
		id := c.Param("id")
		if err := repo.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
			code := http.StatusInternalServerError
			if err == order.ErrNotFound {
				code = http.StatusNotFound
			}
			c.JSON(code, gin.H{"error": err.Error()})
			return
		}
		broker.Publish("orders", realtime.EventUpdate, id)

		o, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// adminSetTrackingHandler assigns a tracking number. A non-empty number
// marks the order shipped in the same write; clearing the number leaves
// the status where it is.
// @Summary Admin tracking write
// @Accept json
// @Produce json
// @Param body body order.UpdateTrackingRequest true "tracking number"
// @Success 200 {object} order.Order
// @Router /api/admin/orders/{id}/tracking [put]
func adminSetTrackingHandler(repo order.Repository, broker *realtime.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateTrackingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		id := c.Param("id")
		if err := repo.SetTracking(c.Request.Context(), id, req.TrackingNumber); err != nil {
			code := http.StatusInternalServerError
			if err == order.ErrNotFound {
				code = http.StatusNotFound
			}
			c.JSON(code, gin.H{"error": err.Error()})
			return
		}
		broker.Publish("orders", realtime.EventUpdate, id)

		o, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// adminEventsHandler streams table changes over SSE for the admin list
// views; the subscription lives exactly as long as the request.
// @Summary Admin change feed
// @Produce text/event-stream
// @Param table query string true "orders or complaints"
// @Param event query string false "insert, update, delete or *"
// @Router /api/admin/events [get]
func adminEventsHandler(broker *realtime.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := c.Query("table")
		if table != "orders" && table != "complaints" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "table must be orders or complaints"})
			return
		}
		event := c.DefaultQuery("event", realtime.EventAll)
		switch event {
		case realtime.EventInsert, realtime.EventUpdate, realtime.EventDelete, realtime.EventAll:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "event must be insert, update, delete or *"})
			return
		}

		sub := broker.Subscribe(table, event)
		defer sub.Unsubscribe()

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Stream(func(w io.Writer) bool {
			select {
			case change, ok := <-sub.C:
				if !ok {
					return false
				}
				c.SSEvent("change", change)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
