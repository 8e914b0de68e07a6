package lap

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/f1log/stint-analyzer-go/pkg/model"
	"github.com/f1log/stint-analyzer-go/pkg/repository"
)

var columns = []string{
	"session_id", "cleaned", "driver", "team", "lap_number", "lap_time_s",
	"stint", "compound", "tyre_life", "pit_in_time_s", "pit_out_time_s",
	"track_status",
}

// Insert bulk-loads laps for a session. cleaned marks whether the rows
// belong to the raw or the cleaned table.
func Insert(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
	laps []model.Lap,
	cleaned bool,
) (int64, error) {
	return conn.CopyFrom(ctx,
		pgx.Identifier{"lap"},
		columns,
		pgx.CopyFromSlice(len(laps), func(i int) ([]any, error) {
			l := laps[i]
			return []any{
				sessionID, cleaned, l.Driver, l.Team, l.LapNumber,
				secondsArg(l.LapTime), l.Stint, compoundArg(l.Compound),
				ageArg(l.TyreLife), secondsArg(l.PitInTime),
				secondsArg(l.PitOutTime), l.TrackStatus,
			}, nil
		}))
}

// DeleteBySession removes laps of one table variant, returns rows deleted.
func DeleteBySession(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
	cleaned bool,
) (int, error) {
	cmdTag, err := conn.Exec(ctx,
		"delete from lap where session_id=$1 and cleaned=$2", sessionID, cleaned)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

//nolint:whitespace // can't make the linters happy
func LoadBySession(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
	cleaned bool,
) ([]model.Lap, error) {
	rows, err := conn.Query(ctx, `
	select driver, team, lap_number, lap_time_s, stint,
	       coalesce(compound,''), tyre_life, pit_in_time_s, pit_out_time_s,
	       track_status
	from lap where session_id=$1 and cleaned=$2
	order by driver, lap_number
	`, sessionID, cleaned)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]model.Lap, 0)
	for rows.Next() {
		var l model.Lap
		var lapTime, tyreLife, pitIn, pitOut *float64
		if err := rows.Scan(&l.Driver, &l.Team, &l.LapNumber, &lapTime,
			&l.Stint, &l.Compound, &tyreLife, &pitIn, &pitOut,
			&l.TrackStatus); err != nil {
			return nil, err
		}
		l.LapTime = secondsVal(lapTime)
		l.TyreLife = ageVal(tyreLife)
		l.PitInTime = secondsVal(pitIn)
		l.PitOutTime = secondsVal(pitOut)
		if cleaned {
			l.LapTimeS = l.LapTime
		}
		ret = append(ret, l)
	}
	return ret, rows.Err()
}

func secondsArg(s model.Seconds) any {
	if !s.Valid {
		return nil
	}
	return s.V
}

func secondsVal(v *float64) model.Seconds {
	if v == nil {
		return model.Seconds{}
	}
	return model.Sec(*v)
}

func ageArg(a model.TyreAge) any {
	if !a.Valid {
		return nil
	}
	return a.V
}

func ageVal(v *float64) model.TyreAge {
	if v == nil {
		return model.TyreAge{}
	}
	return model.Age(*v)
}

func compoundArg(c string) any {
	if c == "" {
		return nil
	}
	return c
}
