package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) Get(ctx context.Context, category, key string) ([]byte, error) {
	sel := builder().Select("value_json").
		From(entsql.Table(settingsTable)).
		Where(entsql.And(entsql.EQ("category", category), entsql.EQ("setting_key", key))).
		Limit(1)
	query, args := sel.Query()

	var raw string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get setting %s.%s: %w", category, key, err)
	}
	return []byte(raw), nil
}

func (r *settingsRepo) Set(ctx context.Context, category, key string, value []byte) error {
	ins := builder().Insert(settingsTable).
		Columns("category", "setting_key", "value_json", "updated_at").
		Values(category, key, string(value), time.Now().Unix()).
		OnConflict(
			entsql.ConflictColumns("category", "setting_key"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := execQuery(ctx, r.db, ins); err != nil {
		return fmt.Errorf("set setting %s.%s: %w", category, key, err)
	}
	return nil
}

func (r *settingsRepo) Category(ctx context.Context, category string) (map[string][]byte, error) {
	sel := builder().Select("setting_key", "value_json").
		From(entsql.Table(settingsTable)).
		Where(entsql.EQ("category", category))
	rows, err := runQuery(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query settings %s: %w", category, err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = []byte(v)
	}
	return out, rows.Err()
}

func (r *settingsRepo) Reset(ctx context.Context) error {
	if _, err := execQuery(ctx, r.db, builder().Delete(settingsTable)); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}
