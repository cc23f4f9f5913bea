package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wassitdz/wassit-api/internal/complaint"
	"github.com/wassitdz/wassit-api/internal/httpx"
	"github.com/wassitdz/wassit-api/internal/realtime"
	"github.com/wassitdz/wassit-api/internal/storage"
)

// createComplaintHandler files a complaint with an optional proof image.
// @Summary Submit a complaint
// @Accept mpfd
// @Produce json
// @Success 201 {object} complaint.Complaint
// @Failure 400 {object} order.HTTPError
// @Router /api/complaints [post]
func createComplaintHandler(repo complaint.Repository, store storage.Uploader, broker *realtime.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		message := strings.TrimSpace(c.PostForm("message"))
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		uid := c.GetString(httpx.KeyUserID)

		proofURL := ""
		if file, err := c.FormFile("proof"); err == nil {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			defer src.Close()
			path := storage.ComplaintProofPath(uid, file.Filename, time.Now())
			proofURL, err = store.Upload(c.Request.Context(), path, src, file.Header.Get("Content-Type"))
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
		}

		cl := &complaint.Complaint{
			ID:        uuid.NewString(),
			UserID:    uid,
			Message:   message,
			ProofURL:  proofURL,
			Status:    complaint.StatusPending,
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.Create(c.Request.Context(), cl); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		broker.Publish("complaints", realtime.EventInsert, cl.ID)
		c.JSON(http.StatusCreated, cl)
	}
}

// listMyComplaintsHandler returns the caller's complaints, newest first.
// @Summary Complaint history
// @Produce json
// @Success 200 {array} complaint.Complaint
// @Router /api/complaints [get]
func listMyComplaintsHandler(repo complaint.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.ListByUser(c.Request.Context(), c.GetString(httpx.KeyUserID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// adminListComplaintsHandler lists every complaint, newest first,
// enriched with each complainant's latest order contact through one
// batched lookup.
// @Summary Admin complaint listing
// @Produce json
// @Param status query string false "All, Pending, Resolved or Rejected"
// @Success 200 {array} complaint.Enriched
// @Router /api/admin/complaints [get]
func adminListComplaintsHandler(repo complaint.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.DefaultQuery("status", "All")
		if status != "All" && !complaint.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be All, Pending, Resolved or Rejected"})
			return
		}
		items, err := repo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		items = complaint.FilterStatus(items, status)

		ids := make([]string, 0, len(items))
		seen := map[string]bool{}
		for _, cl := range items {
			if !seen[cl.UserID] {
				seen[cl.UserID] = true
				ids = append(ids, cl.UserID)
			}
		}
		contacts, err := repo.LatestContacts(c.Request.Context(), ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": complaint.Enrich(items, contacts)})
	}
}

// adminReviewComplaintHandler persists status and notes in one update.
// @Summary Admin complaint review
// @Accept json
// @Produce json
// @Param body body complaint.ReviewRequest true "review"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} order.HTTPError
// @Router /api/admin/complaints/{id} [put]
func adminReviewComplaintHandler(repo complaint.Repository, broker *realtime.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req complaint.ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil || !complaint.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be Pending, Resolved or Rejected"})
			return
		}
		id := c.Param("id")
		if err := repo.UpdateReview(c.Request.Context(), id, req.Status, req.AdminNotes); err != nil {
			code := http.StatusInternalServerError
			if err == complaint.ErrNotFound {
				code = http.StatusNotFound
			}
			c.JSON(code, gin.H{"error": err.Error()})
			return
		}
		broker.Publish("complaints", realtime.EventUpdate, id)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
