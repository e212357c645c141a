package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
)

// ─── Request ──────────────────────────────────────────────────────────────────

// TripRequest is the body POSTed to the planning service.
type TripRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Travelers   int      `json:"travelers"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
}

// NewTripRequest returns the blank request a fresh form starts from.
func NewTripRequest() TripRequest {
	return TripRequest{Travelers: 1, Interests: []string{}}
}

func (r TripRequest) HasInterest(label string) bool {
	return slices.Contains(r.Interests, label)
}

// Clone returns a copy that shares no slice storage with r.
func (r TripRequest) Clone() TripRequest {
	out := r
	out.Interests = append([]string{}, r.Interests...)
	return out
}

// ─── Plan ─────────────────────────────────────────────────────────────────────

type TravelPlan struct {
	Destination    string         `json:"destination"`
	Duration       int            `json:"duration"`
	Overview       Overview       `json:"overview"`
	Transportation Transportation `json:"transportation"`
	Accommodation  Accommodation  `json:"accommodation"`
	Attractions    []Attraction   `json:"attractions"`
	Restaurants    []Restaurant   `json:"restaurants"`
	Activities     []DayActivity  `json:"activities"`
	LocalTips      []string       `json:"localTips"`

	// raw holds the planning service's body; it is re-emitted as is.
	raw json.RawMessage
}

type Overview struct {
	TotalCost string `json:"totalCost"`
	Travelers int    `json:"travelers"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Transportation struct {
	Flights Flights `json:"flights" yaml:"flights"`
}

type Flights struct {
	Outbound  string `json:"outbound" yaml:"outbound"`
	Return    string `json:"return" yaml:"return"`
	CarRental string `json:"carRental" yaml:"carRental"`
}

type Accommodation struct {
	Hotel         string   `json:"hotel" yaml:"hotel"`
	Location      string   `json:"location" yaml:"location"`
	PricePerNight float64  `json:"pricePerNight" yaml:"pricePerNight"`
	Amenities     []string `json:"amenities" yaml:"amenities"`
}

type Attraction struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Duration string `json:"duration" yaml:"duration"`
	Cost     string `json:"cost" yaml:"cost"`
	BestTime string `json:"bestTime" yaml:"bestTime"`
}

type Restaurant struct {
	Name       string `json:"name" yaml:"name"`
	Cuisine    string `json:"cuisine" yaml:"cuisine"`
	Specialty  string `json:"specialty" yaml:"specialty"`
	PriceRange string `json:"priceRange" yaml:"priceRange"`
	MustTry    string `json:"mustTry" yaml:"mustTry"`
}

type DayActivity struct {
	Day       int    `json:"day" yaml:"day"`
	Morning   string `json:"morning" yaml:"morning"`
	Afternoon string `json:"afternoon" yaml:"afternoon"`
	Evening   string `json:"evening" yaml:"evening"`
}

// DecodeTravelPlan parses a planning service response. The shape is not
// validated: a field whose type does not match keeps its zero value and the
// rest of the object is still decoded. Only a body that is not a JSON object
// is rejected. The body is kept for MarshalJSON and Body.
func DecodeTravelPlan(body []byte) (*TravelPlan, error) {
	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("plan body is null")
	}
	var plan TravelPlan
	if err := json.Unmarshal(trimmed, &plan); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || trimmed[0] != '{' {
			return nil, err
		}
	}
	plan.raw = append(json.RawMessage{}, body...)
	return &plan, nil
}

// Body returns a copy of the planning service body, or nil for a plan built
// locally.
func (p *TravelPlan) Body() []byte {
	if len(p.raw) == 0 {
		return nil
	}
	return append([]byte{}, p.raw...)
}

// FromService reports whether the plan was decoded from a planning service body.
func (p *TravelPlan) FromService() bool {
	return len(p.raw) > 0
}

// MarshalJSON emits the planning service body when there is one. encoding/json
// compacts and HTML-escapes that output, so the result is equivalent JSON,
// not the same bytes; use Body for the bytes.
func (p TravelPlan) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	type plain TravelPlan
	return json.Marshal(plain(p))
}
