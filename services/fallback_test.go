package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTripDuration(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       int
	}{
		{"three days", "2024-01-01", "2024-01-04", 3},
		{"four days", "2024-06-01", "2024-06-05", 4},
		{"same day", "2024-06-01", "2024-06-01", 0},
		{"across dst change", "2024-03-09", "2024-03-11", 2},
		{"missing start", "", "2024-01-04", 3},
		{"missing end", "2024-01-01", "", 3},
		{"both missing", "", "", 3},
		{"unparseable", "next week", "2024-01-04", 3},
		{"end before start", "2024-01-04", "2024-01-01", -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, TripDuration(tc.start, tc.end))
		})
	}
}

func TestEmbeddedFallbackContent(t *testing.T) {
	content, err := LoadFallbackContent("")
	require.NoError(t, err)
	require.Equal(t, "San Francisco", content.DefaultDestination)
	require.Equal(t, "2500", content.DefaultTotalCost)
	require.Equal(t, "Marriott Downtown", content.Accommodation.Hotel)
	require.Equal(t, 189.0, content.Accommodation.PricePerNight)
	require.Len(t, content.Attractions, 3)
	require.Equal(t, "Morning for fewer crowds", content.Attractions[0].BestTime)
	require.Len(t, content.Restaurants, 3)
	require.Equal(t, "Zuni Café", content.Restaurants[2].Name)
	require.Len(t, content.Activities, 3)
	require.Equal(t, 3, content.Activities[2].Day)
	require.Len(t, content.LocalTips, 4)
	require.Equal(t, "Compact SUV - $65/day from Enterprise", content.Transportation.Flights.CarRental)
}

func TestFallbackPlanUsesRequestFields(t *testing.T) {
	content, err := LoadFallbackContent("")
	require.NoError(t, err)

	req := TripRequest{
		Destination: "Rome",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-05",
		Travelers:   2,
		Budget:      "1800",
		Interests:   []string{"Food", "History"},
	}
	plan := content.Plan(req)

	require.Equal(t, "Rome", plan.Destination)
	require.Equal(t, 4, plan.Duration)
	require.Equal(t, Overview{TotalCost: "1800", Travelers: 2, StartDate: "2024-06-01", EndDate: "2024-06-05"}, plan.Overview)
	require.Equal(t, content.Attractions, plan.Attractions)
	require.Equal(t, content.Restaurants, plan.Restaurants)
	require.Equal(t, content.Activities, plan.Activities)
	require.Equal(t, content.LocalTips, plan.LocalTips)
	require.False(t, plan.FromService())
}

func TestFallbackPlanDefaults(t *testing.T) {
	content, err := LoadFallbackContent("")
	require.NoError(t, err)

	plan := content.Plan(NewTripRequest())
	require.Equal(t, "San Francisco", plan.Destination)
	require.Equal(t, 3, plan.Duration)
	require.Equal(t, "2500", plan.Overview.TotalCost)
	require.Equal(t, 1, plan.Overview.Travelers)
}

func TestFallbackPlanIsDeterministicAndDetached(t *testing.T) {
	content, err := LoadFallbackContent("")
	require.NoError(t, err)
	req := TripRequest{Destination: "Lisbon", StartDate: "2024-05-01", EndDate: "2024-05-03", Travelers: 1}

	first := content.Plan(req)
	second := content.Plan(req)
	require.Equal(t, first, second)

	first.LocalTips[0] = "changed"
	first.Accommodation.Amenities[0] = "changed"
	require.NotEqual(t, "changed", content.LocalTips[0])
	require.NotEqual(t, "changed", content.Accommodation.Amenities[0])
}

func TestLoadFallbackContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaultDestination: Kyoto
defaultTotalCost: "3000"
localTips:
  - Carry cash
`), 0o600))

	content, err := LoadFallbackContent(path)
	require.NoError(t, err)
	require.Equal(t, "Kyoto", content.DefaultDestination)
	require.Equal(t, []string{"Carry cash"}, content.LocalTips)
}

func TestParseFallbackContentRequiresDefaults(t *testing.T) {
	_, err := ParseFallbackContent([]byte(`defaultTotalCost: "1"`))
	require.ErrorContains(t, err, "defaultDestination")

	_, err = ParseFallbackContent([]byte(`defaultDestination: Oslo`))
	require.ErrorContains(t, err, "defaultTotalCost")

	_, err = LoadFallbackContent(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
