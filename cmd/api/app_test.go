package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheminot.railnav.org/internal/appconf"
)

func TestParseAPIKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single key",
			input:    "test-key",
			expected: []string{"test-key"},
		},
		{
			name:     "Multiple keys",
			input:    "key1,key2,key3",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Keys with spaces",
			input:    " key1 , key2 , key3 ",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "Keys with mixed whitespace",
			input:    "key1,  key2  ,   key3",
			expected: []string{"key1", "key2", "key3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseAPIKeys(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func writeTestData(t *testing.T) appconf.Config {
	t.Helper()
	dir := t.TempDir()

	citiesPath := filepath.Join(dir, "cities.txt")
	require.NoError(t, os.WriteFile(citiesPath, []byte("Paris\nLyon\nMarseille\n"), 0o644))

	stationsPath := filepath.Join(dir, "stations.csv")
	stationsCSV := "station_name,uic_code,latitude,longitude\n" +
		"Paris Gare de Lyon,87686006,48.8443,2.3743\n" +
		"Lyon Part Dieu,87723197,45.7606,4.8596\n" +
		"Marseille Saint Charles,87751008,43.3028,5.3806\n"
	require.NoError(t, os.WriteFile(stationsPath, []byte(stationsCSV), 0o644))

	gtfsDir := filepath.Join(dir, "gtfs")
	require.NoError(t, os.Mkdir(gtfsDir, 0o755))
	tables := map[string]string{
		"stops.txt": "stop_id,stop_code,stop_name\n" +
			"SP1,87686006,Paris Gare de Lyon\n" +
			"SL1,87723197,Lyon Part Dieu\n" +
			"SM1,87751008,Marseille Saint Charles\n",
		"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time\n" +
			"T1,SP1,1,08:00:00,08:00:00\n" +
			"T1,SL1,2,10:00:00,10:05:00\n" +
			"T2,SL1,1,11:00:00,11:00:00\n" +
			"T2,SM1,2,13:00:00,13:00:00\n",
		"trips.txt":  "trip_id,route_id\nT1,R1\nT2,R2\n",
		"routes.txt": "route_id\nR1\nR2\n",
	}
	for name, content := range tables {
		require.NoError(t, os.WriteFile(filepath.Join(gtfsDir, name), []byte(content), 0o644))
	}

	return appconf.Config{
		Port:         4000,
		Env:          appconf.Test,
		ApiKeys:      []string{"test"},
		RateLimit:    100,
		CitiesPath:   citiesPath,
		StationsPath: stationsPath,
		GTFSDir:      gtfsDir,
	}
}

func TestBuildApplication(t *testing.T) {
	cfg := writeTestData(t)

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err)
	require.NotNil(t, coreApp)

	assert.NotNil(t, coreApp.Logger)
	assert.NotNil(t, coreApp.Metrics)
	assert.NotNil(t, coreApp.Resolver)
	assert.NotNil(t, coreApp.Planner)
	assert.Equal(t, cfg, coreApp.Config)
	assert.Equal(t, 3, coreApp.Stations.Len())
	assert.Equal(t, 3, coreApp.Schedule.Stats()["stops"])
}

func TestBuildApplicationErrorHandling(t *testing.T) {
	t.Run("missing cities list", func(t *testing.T) {
		cfg := writeTestData(t)
		cfg.CitiesPath = ""

		_, err := BuildApplication(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no cities list configured")
	})

	t.Run("missing schedule feed", func(t *testing.T) {
		cfg := writeTestData(t)
		cfg.GTFSDir = ""
		cfg.GTFSURL = ""

		_, err := BuildApplication(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no schedule feed configured")
	})

	t.Run("unreadable stations file", func(t *testing.T) {
		cfg := writeTestData(t)
		cfg.StationsPath = filepath.Join(t.TempDir(), "missing.csv")

		_, err := BuildApplication(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load stations")
	})

	t.Run("gtfs dir without stop_times table", func(t *testing.T) {
		cfg := writeTestData(t)
		require.NoError(t, os.Remove(filepath.Join(cfg.GTFSDir, "stop_times.txt")))

		_, err := BuildApplication(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load schedule feed")
	})
}

func TestCreateServer(t *testing.T) {
	cfg := writeTestData(t)
	cfg.Port = 8080

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err)

	srv, rateLimiter := CreateServer(coreApp, cfg)
	defer rateLimiter.Stop()

	assert.Equal(t, ":8080", srv.Addr)
	assert.NotNil(t, srv.Handler)
	assert.Equal(t, time.Minute, srv.IdleTimeout)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)
	assert.Equal(t, 10*time.Second, srv.WriteTimeout)
}

func TestCreateServerHandlerResponds(t *testing.T) {
	cfg := writeTestData(t)

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err)

	srv, rateLimiter := CreateServer(coreApp, cfg)
	defer rateLimiter.Stop()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health?key=test", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateServerJourneyRoundTrip(t *testing.T) {
	cfg := writeTestData(t)

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err)

	srv, rateLimiter := CreateServer(coreApp, cfg)
	defer rateLimiter.Stop()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journeys?from=Paris&to=Marseille&key=test", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ONE_TRANSFER")
}
