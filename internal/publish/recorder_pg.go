package publish

import (
	"context"
	"database/sql"
	"fmt"
)

const insertPublication = `
INSERT INTO resume_publications (
    id,
    profile_slug,
    format,
    storage_key,
    size_bytes,
    sha256,
    published_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

// PGRecorder writes publications to the resume_publications table.
type PGRecorder struct {
	DB *sql.DB
}

// RecordBatch inserts every publication in one transaction.
func (r *PGRecorder) RecordBatch(ctx context.Context, pubs []Publication) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin publication tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, pub := range pubs {
		if _, err = tx.ExecContext(ctx, insertPublication,
			pub.ID,
			pub.ProfileSlug,
			string(pub.Format),
			pub.StorageKey,
			pub.SizeBytes,
			pub.SHA256,
			pub.PublishedAt,
		); err != nil {
			return fmt.Errorf("insert publication %s: %w", pub.Format, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit publications: %w", err)
	}
	return nil
}
