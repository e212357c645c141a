// Package views turns form state into what the page and the PDF show.
package views

import (
	"strconv"

	"tripform/services"
)

type PlanView struct {
	Destination string
	Duration    int
	Travelers   int
	TotalCost   string
	StartDate   string
	EndDate     string

	Attractions []AttractionView

	Hotel         string
	HotelLocation string
	PricePerNight string

	Days []DayView
	Tips []string
}

type AttractionView struct {
	Name     string
	Type     string
	BestTime string
}

type DayView struct {
	Day       int
	Morning   string
	Afternoon string
	Evening   string
}

// NewPlanView projects plan for display. A nil plan renders nothing.
func NewPlanView(plan *services.TravelPlan) *PlanView {
	if plan == nil {
		return nil
	}

	v := &PlanView{
		Destination:   plan.Destination,
		Duration:      plan.Duration,
		Travelers:     plan.Overview.Travelers,
		TotalCost:     plan.Overview.TotalCost,
		StartDate:     plan.Overview.StartDate,
		EndDate:       plan.Overview.EndDate,
		Hotel:         plan.Accommodation.Hotel,
		HotelLocation: plan.Accommodation.Location,
		PricePerNight: "$" + strconv.FormatFloat(plan.Accommodation.PricePerNight, 'f', -1, 64),
		Attractions:   make([]AttractionView, 0, len(plan.Attractions)),
		Days:          make([]DayView, 0, len(plan.Activities)),
		Tips:          append([]string{}, plan.LocalTips...),
	}
	for _, a := range plan.Attractions {
		v.Attractions = append(v.Attractions, AttractionView{Name: a.Name, Type: a.Type, BestTime: a.BestTime})
	}
	for _, d := range plan.Activities {
		v.Days = append(v.Days, DayView(d))
	}
	return v
}
