package views

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripform/services"
)

type PDFData struct {
	Plan        *services.TravelPlan
	Demo        bool
	GeneratedAt time.Time
}

// GeneratePDFBytes renders a plan as an A4 itinerary.
func GeneratePDFBytes(data PDFData) ([]byte, error) {
	if data.Plan == nil {
		return nil, errors.New("no plan to render")
	}
	plan := data.Plan

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)

	// ── Footer ───────────────────────────────────────────────
	generated := data.GeneratedAt.UTC().Format("02 Jan 2006, 15:04 UTC")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 8, tr("Generated "+generated+" • Not a booking confirmation • Prices subject to change"),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(37, 99, 235)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, tr("AI Travel Planner"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, tr(fmt.Sprintf("%s • %d days", plan.Destination, plan.Duration)), "", 1, "L", false, 0, "")

	pdf.SetY(35)

	// ── Demo notice ──────────────────────────────────────────
	if data.Demo {
		pdf.SetFillColor(255, 248, 225)
		pdf.SetDrawColor(212, 168, 67)
		pdf.SetTextColor(130, 90, 20)
		pdf.SetFont("Helvetica", "I", 8)
		y := pdf.GetY()
		pdf.Rect(20, y, 170, 10, "FD")
		pdf.SetXY(23, y+2)
		pdf.MultiCell(164, 4, tr("DEMO DATA - the planning service was unavailable. This itinerary is sample content, not a plan for your trip."), "", "C", false)
		pdf.SetDrawColor(0, 0, 0)
		pdf.Ln(6)
	}

	sectionHeader := func(title string) {
		pdf.SetFillColor(37, 99, 235)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(125, 7, tr(value), "", "L", false)
	}

	text := func(s string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, tr(s), "", "L", false)
	}

	// ── Overview ─────────────────────────────────────────────
	sectionHeader("Overview")
	row("Destination", plan.Destination)
	row("Dates", fmtDateReadable(plan.Overview.StartDate)+" -> "+fmtDateReadable(plan.Overview.EndDate))
	row("Duration", fmt.Sprintf("%d days", plan.Duration))
	row("Travelers", strconv.Itoa(plan.Overview.Travelers))
	row("Total cost (est)", plan.Overview.TotalCost)
	pdf.Ln(4)

	// ── Transportation ───────────────────────────────────────
	flights := plan.Transportation.Flights
	if flights.Outbound != "" || flights.Return != "" || flights.CarRental != "" {
		sectionHeader("Transportation")
		row("Outbound", flights.Outbound)
		row("Return", flights.Return)
		row("Car rental", flights.CarRental)
		pdf.Ln(4)
	}

	// ── Accommodation ────────────────────────────────────────
	sectionHeader("Accommodation")
	row("Hotel", plan.Accommodation.Hotel)
	row("Location", plan.Accommodation.Location)
	row("Price", "$"+strconv.FormatFloat(plan.Accommodation.PricePerNight, 'f', -1, 64)+"/night")
	if len(plan.Accommodation.Amenities) > 0 {
		row("Amenities", strings.Join(plan.Accommodation.Amenities, ", "))
	}
	pdf.Ln(4)

	// ── Attractions ──────────────────────────────────────────
	if len(plan.Attractions) > 0 {
		sectionHeader("Top Attractions")
		for _, a := range plan.Attractions {
			row(a.Name, fmt.Sprintf("%s • %s • %s • %s", a.Type, a.Duration, a.Cost, a.BestTime))
		}
		pdf.Ln(4)
	}

	// ── Restaurants ──────────────────────────────────────────
	if len(plan.Restaurants) > 0 {
		sectionHeader("Restaurants")
		for _, r := range plan.Restaurants {
			row(r.Name, fmt.Sprintf("%s (%s) • %s • Must try: %s", r.Cuisine, r.PriceRange, r.Specialty, r.MustTry))
		}
		pdf.Ln(4)
	}

	// ── Daily Activities ─────────────────────────────────────
	if len(plan.Activities) > 0 {
		sectionHeader("Daily Activities")
		for _, d := range plan.Activities {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(170, 7, fmt.Sprintf("Day %d", d.Day), "", 1, "L", false, 0, "")
			text("Morning: " + d.Morning)
			text("Afternoon: " + d.Afternoon)
			text("Evening: " + d.Evening)
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	// ── Local Tips ───────────────────────────────────────────
	if len(plan.LocalTips) > 0 {
		sectionHeader("Local Tips")
		for _, tip := range plan.LocalTips {
			text("• " + tip)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
