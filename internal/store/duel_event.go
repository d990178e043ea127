package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendDuelEvent(ctx context.Context, data DuelEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := builder().Insert(duelEventsTable).
		Columns("sequence", "timestamp", "session_id", "kind", "role", "tier", "category",
			"problem", "correct", "timed_out", "local_score", "remote_score", "rounds", "peer").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, string(data.Kind), data.Role, data.Tier, data.Category,
			data.Problem, data.Correct, data.TimedOut, data.LocalScore, data.RemoteScore, data.Rounds, data.Peer)
	if _, err := execQuery(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save duel event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryDuelEvents(ctx context.Context, opts QueryOpts) ([]DuelEvent, error) {
	sel := builder().Select("sequence", "timestamp", "session_id", "kind", "role", "tier", "category",
		"problem", "correct", "timed_out", "local_score", "remote_score", "rounds", "peer").
		From(entsql.Table(duelEventsTable)).
		OrderBy(entsql.Asc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.SessionID != "" {
		preds = append(preds, entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Kind != "" {
		preds = append(preds, entsql.EQ("kind", string(opts.Kind)))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	rows, err := runQuery(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query duel events: %w", err)
	}
	defer rows.Close()

	var out []DuelEvent
	for rows.Next() {
		var (
			ev   DuelEvent
			ts   int64
			kind string
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.SessionID, &kind, &ev.Role, &ev.Tier, &ev.Category,
			&ev.Problem, &ev.Correct, &ev.TimedOut, &ev.LocalScore, &ev.RemoteScore, &ev.Rounds, &ev.Peer); err != nil {
			return nil, fmt.Errorf("scan duel event: %w", err)
		}
		ev.Kind = EventKind(kind)
		ev.Timestamp = time.UnixMilli(ts)
		out = append(out, ev)
	}
	return out, rows.Err()
}
