package database

import "context"

const migration = `
CREATE TABLE IF NOT EXISTS feedback_records (
    id uuid PRIMARY KEY,
    message_id text NOT NULL,
    user_id text NOT NULL,
    sentiment text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS feedback_records_message_id_idx
ON feedback_records (message_id);

CREATE INDEX IF NOT EXISTS feedback_records_created_at_idx
ON feedback_records (created_at);

CREATE TABLE IF NOT EXISTS message_log (
    id uuid PRIMARY KEY,
    user_id text NOT NULL,
    direction text NOT NULL,
    body text NOT NULL,
    provider_message_id text,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS message_log_user_id_idx
ON message_log (user_id);

CREATE INDEX IF NOT EXISTS message_log_created_at_idx
ON message_log (created_at);
`

// Migrate applies the idempotent startup schema.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.ExecContext(ctx, migration)
	return err
}
