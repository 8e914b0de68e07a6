package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Seconds is a nullable duration in seconds. Lap and pit times come from the
// provider with millisecond resolution, so the CSV form uses three decimals.
// An empty CSV field maps to the null value.
type Seconds struct {
	V     float64
	Valid bool
}

func Sec(v float64) Seconds {
	return Seconds{V: v, Valid: true}
}

func (s Seconds) MarshalCSV() (string, error) {
	if !s.Valid {
		return "", nil
	}
	return strconv.FormatFloat(s.V, 'f', 3, 64), nil
}

func (s *Seconds) UnmarshalCSV(field string) error {
	field = strings.TrimSpace(field)
	if field == "" {
		*s = Seconds{}
		return nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return fmt.Errorf("invalid seconds value %q: %w", field, err)
	}
	*s = Seconds{V: v, Valid: true}
	return nil
}

// TyreAge is the number of laps completed on the current tyre set. Provider
// data occasionally carries junk in this column, so parsing is tolerant:
// anything non-numeric becomes the null value instead of an error.
type TyreAge struct {
	V     float64
	Valid bool
}

func Age(v float64) TyreAge {
	return TyreAge{V: v, Valid: true}
}

func (a TyreAge) MarshalCSV() (string, error) {
	if !a.Valid {
		return "", nil
	}
	return strconv.FormatFloat(a.V, 'f', -1, 64), nil
}

func (a *TyreAge) UnmarshalCSV(field string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		*a = TyreAge{}
		return nil //nolint:nilerr // coerce non-numeric to null
	}
	*a = TyreAge{V: v, Valid: true}
	return nil
}

// Lap is one row per car per completed lap of a session.
//
// LapNumber is unique per driver within a session. Stint is non-decreasing
// within a driver's lap sequence. A lap with a set PitInTime is an in-lap,
// one with a set PitOutTime is an out-lap.
type Lap struct {
	Driver      string  `csv:"Driver"`
	Team        string  `csv:"Team"`
	LapNumber   int     `csv:"LapNumber"`
	LapTime     Seconds `csv:"LapTime"`
	Stint       int     `csv:"Stint"`
	Compound    string  `csv:"Compound"`
	TyreLife    TyreAge `csv:"TyreLife"`
	PitInTime   Seconds `csv:"PitInTime"`
	PitOutTime  Seconds `csv:"PitOutTime"`
	TrackStatus string  `csv:"TrackStatus"`
	// derived on cleaned rows, empty in raw data
	LapTimeS Seconds `csv:"LapTime_s"`
}

// PitStop is derived from the in-laps of the raw lap table. Stop is the
// 1-based rank of the in-lap within the driver's ordered sequence of in-laps.
type PitStop struct {
	Driver      string  `csv:"Driver"`
	Team        string  `csv:"Team"`
	Stop        int     `csv:"Stop"`
	InLap       int     `csv:"InLap"`
	InTime      Seconds `csv:"InTime"`
	OutTime     Seconds `csv:"OutTime"`
	LapTime     Seconds `csv:"LapTime"`
	Stint       int     `csv:"Stint"`
	Compound    string  `csv:"Compound"`
	TyreLife    TyreAge `csv:"TyreLife"`
	TrackStatus string  `csv:"TrackStatus"`
}

// StintSummary is one row per (driver, stint, compound) group of cleaned laps.
type StintSummary struct {
	Driver      string  `csv:"Driver"`
	Stint       int     `csv:"Stint"`
	Compound    string  `csv:"Compound"`
	Laps        int     `csv:"laps"`
	StartLap    int     `csv:"start_lap"`
	EndLap      int     `csv:"end_lap"`
	MeanPaceS   float64 `csv:"mean_pace_s"`
	MedianPaceS float64 `csv:"median_pace_s"`
}

/// CompoundFit is the linear degradation model for one tyre compound:
// lap time in seconds as a function of tyre age.
type CompoundFit struct {
	Compound    string  `csv:"Compound"`
	InterceptS  float64 `csv:"intercept_s"`
	SlopePerLap float64 `csv:"slope_s_per_lap"`
	N           int     `csv:"n"`
	RmseS       float64 `csv:"rmse_s"`
}

// SessionMeta identifies the fetched session and names its artifacts.
type SessionMeta struct {
	Year        int
	Event       string
	SessionCode string
}

// Tag returns the slug used in artifact file names, e.g. "hungary_2022".
func (m SessionMeta) Tag() string {
	ev := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(m.Event), " ", "_"))
	return fmt.Sprintf("%s_%d", ev, m.Year)
}

func (m SessionMeta) String() string {
	return fmt.Sprintf("%d %s (%s)", m.Year, m.Event, m.SessionCode)
}
