package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripform/form"
)

type FieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

func (h *Handler) GetForm(c *gin.Context) {
	c.JSON(http.StatusOK, formFrom(c).State())
}

func (h *Handler) UpdateField(c *gin.Context) {
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	f := formFrom(c)
	if err := f.UpdateField(req.Name, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, f.State())
}

func (h *Handler) ToggleInterest(c *gin.Context) {
	f := formFrom(c)
	f.ToggleInterest(c.Param("label"))
	c.JSON(http.StatusOK, f.State())
}

// Submit always answers with a plan unless a required field is missing;
// planning service failures show up as demo data, not as errors.
func (h *Handler) Submit(c *gin.Context) {
	f := formFrom(c)
	if _, err := h.submit(c, f); err != nil {
		if errors.Is(err, form.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("submission failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit trip request"})
		return
	}
	c.JSON(http.StatusOK, f.State())
}

func (h *Handler) Reset(c *gin.Context) {
	f := formFrom(c)
	f.Reset()
	c.JSON(http.StatusOK, f.State())
}
