package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripform/form"
	"tripform/views"
)

var formFields = []string{
	form.FieldDestination,
	form.FieldTravelers,
	form.FieldStartDate,
	form.FieldEndDate,
	form.FieldBudget,
}

func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", views.NewPageView(formFrom(c).State()))
}

// PostForm applies every posted field and then the requested action:
// "submit", "reset" or "toggle:<interest>".
func (h *Handler) PostForm(c *gin.Context) {
	f := formFrom(c)

	for _, name := range formFields {
		value, ok := c.GetPostForm(name)
		if !ok {
			continue
		}
		if err := f.UpdateField(name, value); err != nil {
			h.logger.Debug("form field ignored", "field", name, "error", err)
		}
	}

	action := c.PostForm("action")
	switch {
	case action == "submit":
		if _, err := h.submit(c, f); err != nil && !errors.Is(err, form.ErrValidation) {
			h.logger.Error("submission failed", "error", err)
		}
	case action == "reset":
		f.Reset()
	case strings.HasPrefix(action, "toggle:"):
		if label := strings.TrimPrefix(action, "toggle:"); form.IsInterestOption(label) {
			f.ToggleInterest(label)
		}
	}

	c.Redirect(http.StatusSeeOther, "/")
}
