package views

import (
	"embed"
	"html/template"

	"tripform/form"
	"tripform/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type PageView struct {
	Request   services.TripRequest
	Interests []InterestView
	Loading   bool
	// Message is the validation error or the demo-data notice.
	Message string
	Demo    bool
	Plan    *PlanView
	// ArchiveID links to the stored copy of Plan, when there is one.
	ArchiveID string
}

type InterestView struct {
	Label  string
	Active bool
}

func NewPageView(s form.State) PageView {
	interests := make([]InterestView, 0, len(form.InterestOptions))
	for _, label := range form.InterestOptions {
		interests = append(interests, InterestView{Label: label, Active: s.Request.HasInterest(label)})
	}
	return PageView{
		Request:   s.Request,
		Interests: interests,
		Loading:   s.Loading,
		Message:   s.Error,
		Demo:      s.Demo,
		Plan:      NewPlanView(s.Plan),
		ArchiveID: s.ArchiveID,
	}
}
