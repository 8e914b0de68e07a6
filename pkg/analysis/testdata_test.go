package analysis

import "github.com/f1log/stint-analyzer-go/pkg/model"

// sampleLap builds a green flag racing lap.
func sampleLap(drv string, lapNo int, lapTime float64, stint int,
	compound string, tyreLife float64,
) model.Lap {
	return model.Lap{
		Driver:      drv,
		Team:        drv + " Team",
		LapNumber:   lapNo,
		LapTime:     model.Sec(lapTime),
		Stint:       stint,
		Compound:    compound,
		TyreLife:    model.Age(tyreLife),
		TrackStatus: "1",
	}
}

func withPitIn(l model.Lap, t float64) model.Lap {
	l.PitInTime = model.Sec(t)
	return l
}

func withPitOut(l model.Lap, t float64) model.Lap {
	l.PitOutTime = model.Sec(t)
	return l
}

func withStatus(l model.Lap, status string) model.Lap {
	l.TrackStatus = status
	return l
}

func withoutLapTime(l model.Lap) model.Lap {
	l.LapTime = model.Seconds{}
	return l
}
