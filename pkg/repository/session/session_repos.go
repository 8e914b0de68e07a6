package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/f1log/stint-analyzer-go/pkg/model"
	"github.com/f1log/stint-analyzer-go/pkg/repository"
)

// Ensure creates the session row if it does not exist yet and returns it.
// Re-running a job for the same session reuses the existing row.
func Ensure(
	ctx context.Context, conn repository.Querier, meta model.SessionMeta, name string,
) (*model.DbSession, error) {
	row := conn.QueryRow(ctx, `
	insert into session (tag, year, event, session_code, name)
	values ($1,$2,$3,$4,$5)
	on conflict (tag) do update
	  set name = coalesce(nullif(excluded.name,''), session.name)
	returning id, record_stamp
	`, meta.Tag(), meta.Year, meta.Event, meta.SessionCode, name)

	ret := &model.DbSession{
		Tag:         meta.Tag(),
		Year:        meta.Year,
		Event:       meta.Event,
		SessionCode: meta.SessionCode,
		Name:        name,
	}
	if err := row.Scan(&ret.ID, &ret.RecordStamp); err != nil {
		return nil, err
	}
	return ret, nil
}

func LoadByTag(
	ctx context.Context, conn repository.Querier, tag string,
) (*model.DbSession, error) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where tag=$1", selector), tag)
	var ret model.DbSession
	if err := scan(&ret, row); err != nil {
		return nil, err
	}
	return &ret, nil
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByTag(
	ctx context.Context, conn repository.Querier, tag string,
) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from session where tag=$1", tag)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// little helper
const selector = string(`
select id, tag, year, event, session_code, coalesce(name,''), record_stamp
from session
`)

func scan(s *model.DbSession, row pgx.Row) error {
	return row.Scan(&s.ID, &s.Tag, &s.Year, &s.Event, &s.SessionCode,
		&s.Name, &s.RecordStamp)
}
