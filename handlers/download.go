package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripform/database"
	"tripform/services"
	"tripform/views"
)

func (h *Handler) GetPlan(c *gin.Context) {
	rec, err := h.archive.GetPlan(c.Request.Context(), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load plan", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) DownloadPlan(c *gin.Context) {
	rec, err := h.archive.GetPlan(c.Request.Context(), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load plan", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan"})
		return
	}
	h.sendPDF(c, rec.Plan, rec.Source == database.SourceDemo)
}

// DownloadCurrent renders the caller's current plan.
func (h *Handler) DownloadCurrent(c *gin.Context) {
	s := formFrom(c).State()
	if s.Plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No plan has been generated yet"})
		return
	}
	h.sendPDF(c, s.Plan, s.Demo)
}

func (h *Handler) sendPDF(c *gin.Context, plan *services.TravelPlan, demo bool) {
	pdfBytes, err := views.GeneratePDFBytes(views.PDFData{Plan: plan, Demo: demo, GeneratedAt: h.now()})
	if err != nil {
		h.logger.Error("PDF generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=travel-plan.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) Health(c *gin.Context) {
	archiveStatus := "ok"
	if err := h.archive.Ping(c.Request.Context()); err != nil {
		archiveStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "tripform",
		"archive": archiveStatus,
	})
}
