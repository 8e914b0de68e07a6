package timing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

const sampleResponse = `{
  "session": {"year": 2022, "event": "Hungary", "session": "R",
              "name": "Hungarian Grand Prix"},
  "laps": [
    {"driver": "VER", "team": "Red Bull", "lapNumber": 1, "lapTime": 82.456,
     "stint": 1, "compound": "MEDIUM", "tyreLife": 2, "pitInTime": null,
     "pitOutTime": 12.5, "trackStatus": "1"},
    {"driver": "VER", "team": "Red Bull", "lapNumber": 2, "lapTime": null,
     "stint": 1, "compound": "MEDIUM", "tyreLife": 3, "pitInTime": null,
     "pitOutTime": null, "trackStatus": "4"},
    {"driver": "HAM", "team": "Mercedes", "lapNumber": 1, "lapTime": 83.1,
     "stint": 1, "compound": "SOFT", "tyreLife": 1, "pitInTime": 95.2,
     "pitOutTime": null, "trackStatus": "1"}
  ],
  "weather": [{"airTemp": 28.5}]
}`

func sampleMeta() model.SessionMeta {
	return model.SessionMeta{Year: 2022, Event: "Hungary", SessionCode: "R"}
}

func TestFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(sampleResponse))
		}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	data, err := client.Fetch(t.Context(), sampleMeta())
	require.NoError(t, err)

	assert.Equal(t, "year=2022&event=Hungary&session=R", gotQuery)
	assert.Equal(t, "Hungarian Grand Prix", data.Name)
	require.Len(t, data.Laps, 3)

	first := data.Laps[0]
	assert.Equal(t, "VER", first.Driver)
	assert.Equal(t, 1, first.LapNumber)
	assert.Equal(t, model.Sec(82.456), first.LapTime)
	assert.Equal(t, model.Age(2), first.TyreLife)
	assert.False(t, first.PitInTime.Valid)
	assert.Equal(t, model.Sec(12.5), first.PitOutTime)

	// null lap time stays null
	assert.False(t, data.Laps[1].LapTime.Valid)
	assert.Equal(t, "4", data.Laps[1].TrackStatus)
	assert.Equal(t, model.Sec(95.2), data.Laps[2].PitInTime)
}

func TestFetchProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Fetch(t.Context(), sampleMeta())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchUsesCache(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			requests++
			_, _ = w.Write([]byte(sampleResponse))
		}))
	defer srv.Close()

	cacheDir := t.TempDir()
	client := NewClient(WithBaseURL(srv.URL), WithCache(cacheDir))
	_, err := client.Fetch(t.Context(), sampleMeta())
	require.NoError(t, err)
	require.Equal(t, 1, requests)

	// second fetch is served from disk
	again, err := client.Fetch(t.Context(), sampleMeta())
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
	assert.Len(t, again.Laps, 3)

	// a different session misses the cache
	other := sampleMeta()
	other.Year = 2023
	_, err = client.Fetch(t.Context(), other)
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
}

func TestDecodeSessionBadPayload(t *testing.T) {
	_, err := decodeSession(sampleMeta(), []byte("not json"))
	assert.Error(t, err)

	data, err := decodeSession(sampleMeta(), []byte(`{"laps": []}`))
	require.NoError(t, err)
	assert.Empty(t, data.Laps)
}
