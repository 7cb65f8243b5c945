package stations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheminot.railnav.org/internal/scoring"
)

func newTestIndex() *Index {
	return FromStations([]Station{
		{Name: "Paris Gare de Lyon", UIC: "87686006", Latitude: 48.8443, Longitude: 2.3743},
		{Name: "Lyon Part Dieu", UIC: "87723197", Latitude: 45.7606, Longitude: 4.8596},
		{Name: "Lyon Perrache", UIC: "87722025", Latitude: 45.7485, Longitude: 4.8260},
		{Name: "Marseille Saint Charles", UIC: "87751008", Latitude: 43.3028, Longitude: 5.3806},
	}, scoring.Default().Stations)
}

func TestRead(t *testing.T) {
	csvData := "station_name,uic_code,latitude,longitude,extra\n" +
		"Paris Gare de Lyon,87686006,48.8443,2.3743,ignored\n" +
		",87000000,0,0\n" +
		"Bad Coords,87000001,not-a-number,2.0\n" +
		"Lyon Part Dieu,87723197,45.7606,4.8596\n"

	idx, err := Read(strings.NewReader(csvData), scoring.Default().Stations)
	require.NoError(t, err)

	// The blank-name and unparsable-coordinate rows are dropped.
	assert.Equal(t, 2, idx.Len())

	s, ok := idx.FindByUIC("87723197")
	require.True(t, ok)
	assert.Equal(t, "Lyon Part Dieu", s.Name)
}

func TestReadMissingColumn(t *testing.T) {
	csvData := "station_name,latitude,longitude\nParis,48.8,2.3\n"

	_, err := Read(strings.NewReader(csvData), scoring.Default().Stations)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing column "uic_code"`)
}

func TestFindByUIC(t *testing.T) {
	idx := newTestIndex()

	s, ok := idx.FindByUIC("87686006")
	require.True(t, ok)
	assert.Equal(t, "Paris Gare de Lyon", s.Name)

	_, ok = idx.FindByUIC("00000000")
	assert.False(t, ok)
}

func TestCandidatesForCityRanking(t *testing.T) {
	idx := newTestIndex()

	// Both Lyon stations match "Lyon" as a whole word, and so does
	// "Paris Gare de Lyon". The prefix bonus puts the Lyon-prefixed
	// stations first.
	got := idx.CandidatesForCity("Lyon", 0)
	require.Len(t, got, 3)
	assert.Equal(t, "Lyon Part Dieu", got[0].Name)
	assert.Equal(t, "Lyon Perrache", got[1].Name)
	assert.Equal(t, "Paris Gare de Lyon", got[2].Name)
}

func TestCandidatesForCityLimit(t *testing.T) {
	idx := newTestIndex()

	got := idx.CandidatesForCity("Lyon", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Lyon Part Dieu", got[0].Name)
}

func TestCandidatesForCityWholeWordOnly(t *testing.T) {
	idx := newTestIndex()

	// "Lyo" is not a whole word of any station name.
	assert.Empty(t, idx.CandidatesForCity("Lyo", 0))
	assert.Empty(t, idx.CandidatesForCity("", 0))
}

func TestCandidatesForCityAccentFolding(t *testing.T) {
	idx := FromStations([]Station{
		{Name: "Orléans Centre", UIC: "87543009", Latitude: 47.9081, Longitude: 1.9049},
	}, scoring.Default().Stations)

	got := idx.CandidatesForCity("Orleans", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Orléans Centre", got[0].Name)
}

func TestCandidatesFromFreeText(t *testing.T) {
	idx := newTestIndex()

	got := idx.CandidatesFromFreeText("Bonjour, Lyon Part Dieu peut-être ?", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Lyon Part Dieu", got[0].Name)

	// A bare city name is not a full station name.
	assert.Empty(t, idx.CandidatesFromFreeText("je pense à Lyon", 0))
}

func TestNear(t *testing.T) {
	idx := newTestIndex()

	// Central Paris: only Gare de Lyon is within 20km.
	got := idx.Near(48.8566, 2.3522, 20000, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris Gare de Lyon", got[0].Station.Name)
	assert.Greater(t, got[0].Distance, 0.0)
	assert.Less(t, got[0].Distance, 20000.0)
}

func TestNearOrdersByDistance(t *testing.T) {
	idx := newTestIndex()

	// From Part Dieu both Lyon stations are in range, Part Dieu first.
	got := idx.Near(45.7606, 4.8596, 10000, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Lyon Part Dieu", got[0].Station.Name)
	assert.Equal(t, "Lyon Perrache", got[1].Station.Name)
	assert.Less(t, got[0].Distance, got[1].Distance)
}

func TestNearLimitAndRadius(t *testing.T) {
	idx := newTestIndex()

	got := idx.Near(45.7606, 4.8596, 10000, 1)
	assert.Len(t, got, 1)

	assert.Empty(t, idx.Near(45.7606, 4.8596, 0, 0))
	assert.Empty(t, idx.Near(45.7606, 4.8596, -5, 0))
}

func TestAll(t *testing.T) {
	idx := newTestIndex()

	all := idx.All()
	require.Len(t, all, 4)
	assert.Equal(t, "Paris Gare de Lyon", all[0].Name)
	assert.Equal(t, "Marseille Saint Charles", all[3].Name)
}
