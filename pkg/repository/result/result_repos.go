// Package result persists the aggregation outputs: stint summaries and
// per-compound degradation fits.
package result

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/f1log/stint-analyzer-go/pkg/model"
	"github.com/f1log/stint-analyzer-go/pkg/repository"
)

// ReplaceStintSummaries deletes the session's previous summaries and
// bulk-loads the new ones.
func ReplaceStintSummaries(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
	summaries []model.StintSummary,
) error {
	if _, err := conn.Exec(ctx,
		"delete from stint_summary where session_id=$1", sessionID); err != nil {
		return err
	}
	_, err := conn.CopyFrom(ctx,
		pgx.Identifier{"stint_summary"},
		[]string{
			"session_id", "driver", "stint", "compound", "laps",
			"start_lap", "end_lap", "mean_pace_s", "median_pace_s",
		},
		pgx.CopyFromSlice(len(summaries), func(i int) ([]any, error) {
			s := summaries[i]
			return []any{
				sessionID, s.Driver, s.Stint, s.Compound, s.Laps,
				s.StartLap, s.EndLap, s.MeanPaceS, s.MedianPaceS,
			}, nil
		}))
	return err
}

func LoadStintSummaries(
	ctx context.Context, conn repository.Querier, sessionID int,
) ([]model.StintSummary, error) {
	rows, err := conn.Query(ctx, `
	select driver, stint, coalesce(compound,''), laps, start_lap, end_lap,
	       mean_pace_s, median_pace_s
	from stint_summary where session_id=$1
	order by driver, stint, compound
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]model.StintSummary, 0)
	for rows.Next() {
		var s model.StintSummary
		if err := rows.Scan(&s.Driver, &s.Stint, &s.Compound, &s.Laps,
			&s.StartLap, &s.EndLap, &s.MeanPaceS, &s.MedianPaceS); err != nil {
			return nil, err
		}
		ret = append(ret, s)
	}
	return ret, rows.Err()
}

// ReplaceCompoundFits deletes the session's previous fits and stores the
// new ones.
func ReplaceCompoundFits(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
	fits []model.CompoundFit,
) error {
	if _, err := conn.Exec(ctx,
		"delete from compound_fit where session_id=$1", sessionID); err != nil {
		return err
	}
	for _, f := range fits {
		if _, err := conn.Exec(ctx, `
		insert into compound_fit
		  (session_id, compound, intercept_s, slope_s_per_lap, n, rmse_s)
		values ($1,$2,$3,$4,$5,$6)
		`, sessionID, f.Compound, f.InterceptS, f.SlopePerLap, f.N,
			f.RmseS); err != nil {
			return err
		}
	}
	return nil
}

func LoadCompoundFits(
	ctx context.Context, conn repository.Querier, sessionID int,
) ([]model.CompoundFit, error) {
	rows, err := conn.Query(ctx, `
	select compound, intercept_s, slope_s_per_lap, n, rmse_s
	from compound_fit where session_id=$1
	order by compound
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]model.CompoundFit, 0)
	for rows.Next() {
		var f model.CompoundFit
		if err := rows.Scan(&f.Compound, &f.InterceptS, &f.SlopePerLap,
			&f.N, &f.RmseS); err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	return ret, rows.Err()
}
