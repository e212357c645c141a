// Package form holds the trip request form: its state, the pure transitions
// applied to it, and the controller that runs a submission.
package form

import (
	"slices"
	"strconv"

	"tripform/services"
)

const (
	MsgRequiredFields = "Please fill in all required fields"
	MsgDemoData       = "Using demo data. Connect to backend for real planning."
)

// Field names accepted by FieldUpdated.
const (
	FieldDestination = "destination"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldTravelers   = "travelers"
	FieldBudget      = "budget"
)

// InterestOptions are the toggles offered by the form.
var InterestOptions = []string{"Adventure", "Culture", "Food", "Nature", "History", "Relaxation", "Shopping", "Nightlife"}

// State is everything the form knows. Plan is either nil or a complete plan.
type State struct {
	Request services.TripRequest `json:"request"`
	Loading bool                 `json:"loading"`
	Error   string               `json:"error"`
	Plan    *services.TravelPlan `json:"plan"`
	// Demo is set when Plan came from the fallback synthesizer.
	Demo bool `json:"demo"`
	// ArchiveID identifies the stored copy of Plan, once it is stored.
	ArchiveID string `json:"archiveId,omitempty"`
	// Generation increases with every submission that passes validation.
	Generation uint64 `json:"-"`
}

func NewState() State {
	return State{Request: services.NewTripRequest()}
}

// Event is one transition of the form state.
type Event interface {
	apply(State) State
}

// Reduce applies e to s. s is never modified.
func Reduce(s State, e Event) State {
	s.Request = s.Request.Clone()
	return e.apply(s)
}

// FieldUpdated sets one request field. Unknown names and a non-numeric
// traveler count leave the state unchanged; Form rejects them before
// dispatching.
type FieldUpdated struct {
	Name  string
	Value string
}

func (e FieldUpdated) apply(s State) State {
	switch e.Name {
	case FieldDestination:
		s.Request.Destination = e.Value
	case FieldStartDate:
		s.Request.StartDate = e.Value
	case FieldEndDate:
		s.Request.EndDate = e.Value
	case FieldBudget:
		s.Request.Budget = e.Value
	case FieldTravelers:
		n, err := strconv.Atoi(e.Value)
		if err != nil {
			return s
		}
		s.Request.Travelers = n
	}
	return s
}

// InterestToggled adds Label to the interests, or removes it when present.
type InterestToggled struct {
	Label string
}

func (e InterestToggled) apply(s State) State {
	if i := slices.Index(s.Request.Interests, e.Label); i >= 0 {
		s.Request.Interests = slices.Delete(s.Request.Interests, i, i+1)
	} else {
		s.Request.Interests = append(s.Request.Interests, e.Label)
	}
	return s
}

// SubmitStarted validates the request. On failure only Error changes;
// otherwise a new generation begins with loading set and plan cleared.
type SubmitStarted struct{}

func (SubmitStarted) apply(s State) State {
	if s.Request.Destination == "" || s.Request.StartDate == "" || s.Request.EndDate == "" {
		s.Error = MsgRequiredFields
		return s
	}
	s.Generation++
	s.Loading = true
	s.Error = ""
	s.Plan = nil
	s.Demo = false
	s.ArchiveID = ""
	return s
}

// SubmitResolved delivers the plan of one submission. It is dropped when a
// newer submission has started since.
type SubmitResolved struct {
	Generation uint64
	Plan       *services.TravelPlan
	Demo       bool
}

func (e SubmitResolved) apply(s State) State {
	if e.Generation != s.Generation || !s.Loading || e.Plan == nil {
		return s
	}
	s.Plan = e.Plan
	s.Demo = e.Demo
	if e.Demo {
		s.Error = MsgDemoData
	}
	s.Loading = false
	return s
}

// Archived records where the plan of Generation was stored.
type Archived struct {
	Generation uint64
	ID         string
}

func (e Archived) apply(s State) State {
	if e.Generation != s.Generation || s.Loading || s.Plan == nil {
		return s
	}
	s.ArchiveID = e.ID
	return s
}

// Reset returns the form to its initial contents. The generation keeps
// counting so in-flight submissions stay stale.
type Reset struct{}

func (Reset) apply(s State) State {
	next := NewState()
	next.Generation = s.Generation + 1
	return next
}
