package form

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tripform/services"
)

func TestReduceFieldUpdated(t *testing.T) {
	s := NewState()
	s = Reduce(s, FieldUpdated{Name: FieldDestination, Value: "Rome"})
	s = Reduce(s, FieldUpdated{Name: FieldStartDate, Value: "2024-06-01"})
	s = Reduce(s, FieldUpdated{Name: FieldEndDate, Value: "2024-06-05"})
	s = Reduce(s, FieldUpdated{Name: FieldBudget, Value: "1800"})
	s = Reduce(s, FieldUpdated{Name: FieldTravelers, Value: "2"})

	require.Equal(t, services.TripRequest{
		Destination: "Rome",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-05",
		Travelers:   2,
		Budget:      "1800",
		Interests:   []string{},
	}, s.Request)
}

func TestReduceFieldUpdatedIgnoresBadInput(t *testing.T) {
	s := NewState()
	require.Equal(t, s, Reduce(s, FieldUpdated{Name: "origin", Value: "TAS"}))
	require.Equal(t, s, Reduce(s, FieldUpdated{Name: FieldTravelers, Value: "two"}))
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := NewState()
	s = Reduce(s, InterestToggled{Label: "Food"})
	s = Reduce(s, InterestToggled{Label: "History"})

	next := Reduce(s, InterestToggled{Label: "Food"})
	require.Equal(t, []string{"Food", "History"}, s.Request.Interests)
	require.Equal(t, []string{"History"}, next.Request.Interests)
}

func TestInterestToggledIsItsOwnInverse(t *testing.T) {
	start := NewState()
	start = Reduce(start, InterestToggled{Label: "Nature"})
	start = Reduce(start, InterestToggled{Label: "Food"})

	for _, label := range append(InterestOptions, "Skiing") {
		s := Reduce(start, InterestToggled{Label: label})
		s = Reduce(s, InterestToggled{Label: label})
		require.ElementsMatch(t, start.Request.Interests, s.Request.Interests, label)
	}
}

func TestSubmitStartedValidation(t *testing.T) {
	base := NewState()
	base.Request.Destination = "Rome"
	base.Request.StartDate = "2024-06-01"
	base.Request.EndDate = "2024-06-05"

	missing := map[string]func(*State){
		"destination": func(s *State) { s.Request.Destination = "" },
		"start date":  func(s *State) { s.Request.StartDate = "" },
		"end date":    func(s *State) { s.Request.EndDate = "" },
	}
	for name, clear := range missing {
		t.Run(name, func(t *testing.T) {
			s := base
			s.Request = base.Request.Clone()
			clear(&s)

			next := Reduce(s, SubmitStarted{})
			require.Equal(t, MsgRequiredFields, next.Error)
			require.False(t, next.Loading)
			require.Equal(t, s.Generation, next.Generation)
			require.Nil(t, next.Plan)
		})
	}
}

func TestSubmitLifecycle(t *testing.T) {
	s := NewState()
	s.Request.Destination = "Rome"
	s.Request.StartDate = "2024-06-01"
	s.Request.EndDate = "2024-06-05"
	s.Error = MsgDemoData
	s.Plan = &services.TravelPlan{Destination: "old"}

	s = Reduce(s, SubmitStarted{})
	require.True(t, s.Loading)
	require.Empty(t, s.Error)
	require.Nil(t, s.Plan)
	require.Equal(t, uint64(1), s.Generation)

	plan := &services.TravelPlan{Destination: "Rome"}
	s = Reduce(s, SubmitResolved{Generation: 1, Plan: plan})
	require.False(t, s.Loading)
	require.Empty(t, s.Error)
	require.False(t, s.Demo)
	require.Same(t, plan, s.Plan)
}

func TestSubmitResolvedDemoSetsNotice(t *testing.T) {
	s := NewState()
	s.Request.Destination = "Rome"
	s.Request.StartDate = "2024-06-01"
	s.Request.EndDate = "2024-06-05"
	s = Reduce(s, SubmitStarted{})

	s = Reduce(s, SubmitResolved{Generation: s.Generation, Plan: &services.TravelPlan{}, Demo: true})
	require.Equal(t, MsgDemoData, s.Error)
	require.True(t, s.Demo)
	require.False(t, s.Loading)
}

func TestSubmitResolvedDropsStaleGeneration(t *testing.T) {
	s := NewState()
	s.Request.Destination = "Rome"
	s.Request.StartDate = "2024-06-01"
	s.Request.EndDate = "2024-06-05"
	s = Reduce(s, SubmitStarted{})
	s = Reduce(s, SubmitStarted{})

	stale := Reduce(s, SubmitResolved{Generation: 1, Plan: &services.TravelPlan{Destination: "stale"}})
	require.Equal(t, s, stale)
	require.True(t, stale.Loading)
}

func TestResetStartsOverAndInvalidatesInFlight(t *testing.T) {
	s := NewState()
	s.Request.Destination = "Rome"
	s.Request.StartDate = "2024-06-01"
	s.Request.EndDate = "2024-06-05"
	s = Reduce(s, SubmitStarted{})
	inFlight := s.Generation

	s = Reduce(s, Reset{})
	require.Equal(t, services.NewTripRequest(), s.Request)
	require.False(t, s.Loading)

	s = Reduce(s, SubmitResolved{Generation: inFlight, Plan: &services.TravelPlan{}})
	require.Nil(t, s.Plan)
}

func TestArchivedAppliesOnlyToCurrentPlan(t *testing.T) {
	s := NewState()
	s.Request.Destination = "Rome"
	s.Request.StartDate = "2024-06-01"
	s.Request.EndDate = "2024-06-05"
	s = Reduce(s, SubmitStarted{})

	require.Empty(t, Reduce(s, Archived{Generation: s.Generation, ID: "early"}).ArchiveID)

	s = Reduce(s, SubmitResolved{Generation: s.Generation, Plan: &services.TravelPlan{}})
	require.Empty(t, Reduce(s, Archived{Generation: s.Generation - 1, ID: "old"}).ArchiveID)

	s = Reduce(s, Archived{Generation: s.Generation, ID: "p1"})
	require.Equal(t, "p1", s.ArchiveID)

	s = Reduce(s, SubmitStarted{})
	require.Empty(t, s.ArchiveID)
}
