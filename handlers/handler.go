package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripform/database"
	"tripform/form"
	"tripform/sessions"
)

const (
	sessionCookie = "trip_session"
	formKey       = "form"
)

type Handler struct {
	sessions  *sessions.Store
	archive   database.Archive
	logger    *slog.Logger
	cookieTTL time.Duration
	now       func() time.Time
}

func New(store *sessions.Store, archive database.Archive, logger *slog.Logger, cookieTTL time.Duration) *Handler {
	return &Handler{
		sessions:  store,
		archive:   archive,
		logger:    logger,
		cookieTTL: cookieTTL,
		now:       time.Now,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/api/health", h.Health)
	r.GET("/api/plans/:id", h.GetPlan)
	r.GET("/api/plans/:id/pdf", h.DownloadPlan)

	page := r.Group("/", h.Session)
	{
		page.GET("/", h.Index)
		page.POST("/form", h.PostForm)
		page.GET("/plan.pdf", h.DownloadCurrent)
	}

	api := r.Group("/api/form", h.Session)
	{
		api.GET("", h.GetForm)
		api.POST("/field", h.UpdateField)
		api.POST("/interests/:label", h.ToggleInterest)
		api.POST("/submit", h.Submit)
		api.POST("/reset", h.Reset)
	}
}

// Session attaches the caller's form, starting a session when needed.
func (h *Handler) Session(c *gin.Context) {
	id, _ := c.Cookie(sessionCookie)
	id, f := h.sessions.Get(id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(h.cookieTTL.Seconds()), "/", "", false, true)
	c.Set(formKey, f)
	c.Next()
}

func formFrom(c *gin.Context) *form.Form {
	return c.MustGet(formKey).(*form.Form)
}

// submit runs a submission detached from the request's cancellation, so a
// closed tab still leaves a resolved form behind.
func (h *Handler) submit(c *gin.Context, f *form.Form) (form.Outcome, error) {
	ctx := context.WithoutCancel(c.Request.Context())
	out, err := f.Submit(ctx)
	if err != nil {
		return out, err
	}
	h.archivePlan(ctx, f, out)
	return out, nil
}

func (h *Handler) archivePlan(ctx context.Context, f *form.Form, out form.Outcome) {
	if out.Superseded {
		return
	}
	source := database.SourceLive
	if out.Demo {
		source = database.SourceDemo
	}
	rec := &database.PlanRecord{
		ID:        uuid.New().String(),
		Request:   out.Request,
		Plan:      out.Plan,
		Source:    source,
		CreatedAt: h.now(),
	}
	if err := h.archive.SavePlan(ctx, rec); err != nil {
		h.logger.Error("failed to archive plan", "destination", out.Request.Destination, "error", err)
		return
	}
	f.MarkArchived(out.Generation, rec.ID)
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds())
	}
}
