package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	highScoresTable = "high_scores"
	settingsTable   = "settings"
	duelEventsTable = "duel_events"
)

var (
	// HighScoresColumns holds the columns for the "high_scores" table.
	HighScoresColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "entry_id", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString, Size: MaxNameLength},
		{Name: "score", Type: field.TypeInt},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeInt64},
	}
	// HighScoresTable holds the schema information for the "high_scores" table.
	HighScoresTable = &schema.Table{
		Name:       highScoresTable,
		Columns:    HighScoresColumns,
		PrimaryKey: []*schema.Column{HighScoresColumns[0]},
		Indexes: []*schema.Index{
			{Name: "highscore_score", Unique: false, Columns: []*schema.Column{HighScoresColumns[3]}},
		},
	}

	// SettingsColumns holds the columns for the "settings" table.
	SettingsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "category", Type: field.TypeString},
		{Name: "setting_key", Type: field.TypeString},
		{Name: "value_json", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// SettingsTable holds the schema information for the "settings" table.
	SettingsTable = &schema.Table{
		Name:       settingsTable,
		Columns:    SettingsColumns,
		PrimaryKey: []*schema.Column{SettingsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "setting_category_setting_key", Unique: true, Columns: []*schema.Column{SettingsColumns[1], SettingsColumns[2]}},
		},
	}

	// DuelEventsColumns holds the columns for the "duel_events" table.
	DuelEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "role", Type: field.TypeString},
		{Name: "tier", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "problem", Type: field.TypeString, Default: ""},
		{Name: "correct", Type: field.TypeBool, Default: false},
		{Name: "timed_out", Type: field.TypeBool, Default: false},
		{Name: "local_score", Type: field.TypeInt, Default: 0},
		{Name: "remote_score", Type: field.TypeInt, Default: 0},
		{Name: "rounds", Type: field.TypeInt, Default: 0},
		{Name: "peer", Type: field.TypeString, Default: ""},
	}
	// DuelEventsTable holds the schema information for the "duel_events" table.
	DuelEventsTable = &schema.Table{
		Name:       duelEventsTable,
		Columns:    DuelEventsColumns,
		PrimaryKey: []*schema.Column{DuelEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "duelevent_session_id", Unique: false, Columns: []*schema.Column{DuelEventsColumns[3]}},
			{Name: "duelevent_kind", Unique: false, Columns: []*schema.Column{DuelEventsColumns[4]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		HighScoresTable,
		SettingsTable,
		DuelEventsTable,
	}
)
