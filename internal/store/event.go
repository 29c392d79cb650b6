package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event is one journaled accumulator event.
type Event struct {
	ID         string
	SessionID  string
	Seq        int64
	Kind       string
	Symbol     string
	Passcode   string
	Shift      bool
	Dropped    bool
	Auto       bool
	OccurredAt time.Time
}

// EventRepository appends and reads events of the current session.
type EventRepository struct {
	db      *sql.DB
	session string
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db, session: s.session}
}

// Append stores e under the current session and fills in its ID, SessionID
// and Seq.
func (r *EventRepository) Append(e *Event) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM events WHERE session_id = ?`, r.session,
	).Scan(&seq); err != nil {
		return err
	}

	id := uuid.NewString()
	_, err = tx.Exec(
		`INSERT INTO events (id, session_id, seq, kind, symbol, passcode, shift, dropped, auto, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.session, seq, e.Kind, e.Symbol, e.Passcode, e.Shift, e.Dropped, e.Auto, e.OccurredAt,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	e.ID = id
	e.SessionID = r.session
	e.Seq = seq
	return nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(id string) (*Event, error) {
	row := r.db.QueryRow(
		`SELECT id, session_id, seq, kind, symbol, passcode, shift, dropped, auto, occurred_at
		 FROM events WHERE id = ?`,
		id,
	)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns the most recent limit events of the session in the order
// they happened. A limit <= 0 returns every event.
func (r *EventRepository) List(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT id, session_id, seq, kind, symbol, passcode, shift, dropped, auto, occurred_at
		 FROM (
			SELECT * FROM events WHERE session_id = ? ORDER BY seq DESC LIMIT ?
		 ) ORDER BY seq ASC`,
		r.session, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByKind returns how many events of kind the session has recorded.
func (r *EventRepository) CountByKind(kind string) (int, error) {
	var n int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE session_id = ? AND kind = ?`, r.session, kind,
	).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*Event, error) {
	e := &Event{}
	var shift, dropped, auto int

	err := s.Scan(&e.ID, &e.SessionID, &e.Seq, &e.Kind, &e.Symbol, &e.Passcode,
		&shift, &dropped, &auto, &e.OccurredAt)
	if err != nil {
		return nil, err
	}

	e.Shift = shift != 0
	e.Dropped = dropped != 0
	e.Auto = auto != 0
	return e, nil
}
