package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"eventhub/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

type DB struct {
	Bun *bun.DB
}

// CreateEvent inserts a new row and returns it with the assigned id.
func (d *DB) CreateEvent(event models.Event) (*models.Event, error) {
	_, err := d.Bun.NewInsert().Model(&event).Exec(context.Background())
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *DB) GetEventByID(id int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// ListEvents returns all events ordered by date ascending.
func (d *DB) ListEvents() ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Order("date ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEvent rewrites the subset of fields present in upd. An empty subset
// is a no-op that returns the current record.
func (d *DB) UpdateEvent(id int64, upd models.EventUpdate) (*models.Event, error) {
	if upd.Empty() {
		return d.GetEventByID(id)
	}

	q := d.Bun.NewUpdate().
		Model((*models.Event)(nil)).
		Where("id = ?", id)

	if upd.Title != nil {
		q = q.Set("title = ?", *upd.Title)
	}
	if upd.Description != nil {
		q = q.Set("description = ?", *upd.Description)
	}
	if upd.Date != nil {
		q = q.Set("date = ?", *upd.Date)
	}
	if upd.Location != nil {
		q = q.Set("location = ?", *upd.Location)
	}

	res, err := q.Exec(context.Background())
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrEventNotFound
	}

	return d.GetEventByID(id)
}

// DeleteEvent removes the row and reports whether one existed.
func (d *DB) DeleteEvent(id int64) (bool, error) {
	res, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
