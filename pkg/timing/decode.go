package timing

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

var (
	lapsPath        = jp.MustParseString("$.laps[*]")
	sessionNamePath = jp.MustParseString("$.session.name")
)

// decodeSession parses the provider response envelope. Only the paths we
// care about are bound; the envelope may carry additional data (weather,
// messages) which is ignored.
func decodeSession(meta model.SessionMeta, data []byte) (*SessionData, error) {
	obj, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing provider response: %w", err)
	}
	ret := &SessionData{Meta: meta}
	if res := sessionNamePath.Get(obj); len(res) > 0 {
		ret.Name = asString(res[0])
	}
	for i, raw := range lapsPath.Get(obj) {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("lap entry %d: unexpected shape %T", i, raw)
		}
		ret.Laps = append(ret.Laps, model.Lap{
			Driver:      asString(m["driver"]),
			Team:        asString(m["team"]),
			LapNumber:   asInt(m["lapNumber"]),
			LapTime:     asSeconds(m["lapTime"]),
			Stint:       asInt(m["stint"]),
			Compound:    asString(m["compound"]),
			TyreLife:    asAge(m["tyreLife"]),
			PitInTime:   asSeconds(m["pitInTime"]),
			PitOutTime:  asSeconds(m["pitOutTime"]),
			TrackStatus: asString(m["trackStatus"]),
		})
	}
	return ret, nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// asFloat handles the numeric types the JSON parser may produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func asInt(v any) int {
	if f, ok := asFloat(v); ok {
		return int(f)
	}
	return 0
}

func asSeconds(v any) model.Seconds {
	if f, ok := asFloat(v); ok {
		return model.Sec(f)
	}
	return model.Seconds{}
}

func asAge(v any) model.TyreAge {
	if f, ok := asFloat(v); ok {
		return model.Age(f)
	}
	return model.TyreAge{}
}
