package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"tripform/services"
)

var (
	ErrValidation   = errors.New(MsgRequiredFields)
	ErrUnknownField = errors.New("unknown form field")
	ErrInvalidField = errors.New("invalid form field value")
)

// Planner produces a plan for a request; services.PlannerClient in production.
type Planner interface {
	PlanTrip(ctx context.Context, req services.TripRequest) (*services.TravelPlan, error)
}

// Outcome describes how one submission resolved.
type Outcome struct {
	Generation uint64
	Request    services.TripRequest
	Plan       *services.TravelPlan
	Demo       bool
	// Superseded is set when a later submission or a reset started before
	// this one resolved; its plan was not applied.
	Superseded bool
}

// Form owns one user's form state. Every change goes through Reduce under
// the mutex; only the planning call runs outside it.
type Form struct {
	mu       sync.Mutex
	state    State
	planner  Planner
	fallback *services.FallbackContent
	logger   *slog.Logger
}

func New(planner Planner, fallback *services.FallbackContent, logger *slog.Logger) *Form {
	return &Form{
		state:    NewState(),
		planner:  planner,
		fallback: fallback,
		logger:   logger,
	}
}

// State returns a snapshot that callers may keep.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.state
	s.Request = s.Request.Clone()
	return s
}

func (f *Form) dispatch(e Event) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = Reduce(f.state, e)
	return f.state
}

// UpdateField sets a request field without validating its content. The
// only checks are that the field exists and that travelers is a number.
func (f *Form) UpdateField(name, value string) error {
	switch name {
	case FieldDestination, FieldStartDate, FieldEndDate, FieldBudget:
	case FieldTravelers:
		if _, err := parseTravelers(value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.dispatch(FieldUpdated{Name: name, Value: value})
	return nil
}

func (f *Form) ToggleInterest(label string) {
	f.dispatch(InterestToggled{Label: label})
}

// MarkArchived attaches an archive id to the plan of generation gen. It is
// ignored when another submission has started since.
func (f *Form) MarkArchived(gen uint64, id string) {
	f.dispatch(Archived{Generation: gen, ID: id})
}

func (f *Form) Reset() {
	f.dispatch(Reset{})
}

// Submit validates the request and asks the planner for a plan. When the
// planner fails for any reason the fallback plan is used instead and the
// demo notice is set. Validation failures return ErrValidation without
// calling the planner. Overlapping submissions are allowed; the latest one
// started owns the final state.
func (f *Form) Submit(ctx context.Context) (out Outcome, err error) {
	f.mu.Lock()
	prev := f.state.Generation
	f.state = Reduce(f.state, SubmitStarted{})
	if f.state.Generation == prev {
		f.mu.Unlock()
		return Outcome{}, ErrValidation
	}
	out = Outcome{Generation: f.state.Generation, Request: f.state.Request.Clone()}
	f.mu.Unlock()

	// The deferred resolve clears loading even if the planner panics.
	defer func() {
		if out.Plan == nil {
			out.Plan = f.fallback.Plan(out.Request)
			out.Demo = true
		}
		f.mu.Lock()
		f.state = Reduce(f.state, SubmitResolved{Generation: out.Generation, Plan: out.Plan, Demo: out.Demo})
		out.Superseded = f.state.Generation != out.Generation
		f.mu.Unlock()
	}()

	plan, planErr := f.planner.PlanTrip(ctx, out.Request)
	if planErr == nil && plan == nil {
		planErr = errors.New("planner returned no plan")
	}
	if planErr != nil {
		f.logger.Warn("planning service failed, using demo plan",
			"destination", out.Request.Destination, "error", planErr)
		return out, nil
	}
	f.logger.Info("plan received", "destination", out.Request.Destination, "duration", plan.Duration)
	out.Plan = plan
	return out, nil
}

func parseTravelers(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: travelers must be a whole number", ErrInvalidField)
	}
	return n, nil
}

// IsInterestOption reports whether label is one of the offered toggles.
func IsInterestOption(label string) bool {
	return slices.Contains(InterestOptions, label)
}
