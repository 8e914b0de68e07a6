package model

import "time"

// DbSession is the database row describing one fetched session.
type DbSession struct {
	ID          int
	Tag         string
	Year        int
	Event       string
	SessionCode string
	Name        string
	RecordStamp time.Time
}
