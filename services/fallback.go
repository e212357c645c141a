package services

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// defaultTripDays is the duration used when either date is missing or unparseable.
const defaultTripDays = 3

const dateLayout = "2006-01-02"

//go:embed fallback_plan.yaml
var embeddedFallbackPlan []byte

// FallbackContent is the input-independent part of the demo plan.
type FallbackContent struct {
	DefaultDestination string         `yaml:"defaultDestination"`
	DefaultTotalCost   string         `yaml:"defaultTotalCost"`
	Transportation     Transportation `yaml:"transportation"`
	Accommodation      Accommodation  `yaml:"accommodation"`
	Attractions        []Attraction   `yaml:"attractions"`
	Restaurants        []Restaurant   `yaml:"restaurants"`
	Activities         []DayActivity  `yaml:"activities"`
	LocalTips          []string       `yaml:"localTips"`
}

// LoadFallbackContent reads demo content from path, or the embedded content
// when path is empty.
func LoadFallbackContent(path string) (*FallbackContent, error) {
	if path == "" {
		return ParseFallbackContent(embeddedFallbackPlan)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback plan: %w", err)
	}
	return ParseFallbackContent(data)
}

func ParseFallbackContent(data []byte) (*FallbackContent, error) {
	var content FallbackContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parse fallback plan: %w", err)
	}
	if content.DefaultDestination == "" {
		return nil, errors.New("fallback plan: defaultDestination is required")
	}
	if content.DefaultTotalCost == "" {
		return nil, errors.New("fallback plan: defaultTotalCost is required")
	}
	return &content, nil
}

// Plan synthesizes the demo plan for req. Only the destination, duration and
// overview depend on the request; everything else is copied from c.
func (c *FallbackContent) Plan(req TripRequest) *TravelPlan {
	destination := req.Destination
	if destination == "" {
		destination = c.DefaultDestination
	}
	totalCost := req.Budget
	if totalCost == "" {
		totalCost = c.DefaultTotalCost
	}

	accommodation := c.Accommodation
	accommodation.Amenities = slices.Clone(c.Accommodation.Amenities)

	return &TravelPlan{
		Destination: destination,
		Duration:    TripDuration(req.StartDate, req.EndDate),
		Overview: Overview{
			TotalCost: totalCost,
			Travelers: req.Travelers,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		},
		Transportation: c.Transportation,
		Accommodation:  accommodation,
		Attractions:    slices.Clone(c.Attractions),
		Restaurants:    slices.Clone(c.Restaurants),
		Activities:     slices.Clone(c.Activities),
		LocalTips:      slices.Clone(c.LocalTips),
	}
}

// TripDuration returns the whole days between two YYYY-MM-DD dates, rounded
// up. Both dates are read as midnight in the same zone, so DST shifts never
// add a day. End before start yields a non-positive count.
func TripDuration(start, end string) int {
	if start == "" || end == "" {
		return defaultTripDays
	}
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return defaultTripDays
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return defaultTripDays
	}
	return int(math.Ceil(e.Sub(s).Hours() / 24))
}
