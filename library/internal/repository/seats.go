package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
)

func (r *repository) ListFreeSeats(ctx context.Context) ([]model.Seat, error) {
	query, args, err := qb.Select("id", "room_number", "seat_number", "status").
		From(seatsTableName).
		Where(sq.Eq{"status": model.SeatFree}).
		OrderBy("room_number", "seat_number").
		ToSql()
	if err != nil {
		return nil, err
	}
	return collectAll[model.Seat](r.db.Query(ctx, query, args...))
}
