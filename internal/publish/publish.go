package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"resume-site/internal/shared/storage/object"
	"resume-site/internal/shared/telemetry"
	"resume-site/internal/shared/util"
	"resume-site/resume/contract"
)

// Exporter renders one format of the configured résumé.
type Exporter interface {
	Export(ctx context.Context, format contract.Format) (contract.Document, error)
}

// Publication describes one stored document.
type Publication struct {
	ID          string
	ProfileSlug string
	Format      contract.Format
	StorageKey  string
	LatestKey   string
	SizeBytes   int64
	SHA256      string
	PublishedAt time.Time
}

// Batch is the result of one Publish call.
type Batch struct {
	ID           string
	Publications []Publication
}

// Recorder persists the publications of one batch, all or none. It is
// optional.
type Recorder interface {
	RecordBatch(ctx context.Context, pubs []Publication) error
}

// Publisher renders the downloadable formats and uploads them to an object
// store under <slug>/<batch>/ and <slug>/latest/.
type Publisher struct {
	Exporter Exporter
	Store    object.ObjectStore
	Recorder Recorder
	Formats  []contract.Format
	Now      func() time.Time
}

// DefaultFormats are the downloadable formats.
var DefaultFormats = []contract.Format{contract.FormatPDF, contract.FormatDOCX}

// Publish renders every format concurrently and stores the results under
// the batch prefix. latest/ is only updated, and the batch only recorded,
// once every format has been stored.
func (p *Publisher) Publish(ctx context.Context, slug string) (Batch, error) {
	slug, err := util.SanitizeSegment(slug)
	if err != nil {
		return Batch{}, fmt.Errorf("publish slug: %w", err)
	}
	formats := p.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	batch := Batch{
		ID:           uuid.NewString(),
		Publications: make([]Publication, len(formats)),
	}
	publishedAt := now().UTC()

	docs := make([]contract.Document, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		i, format := i, format
		g.Go(func() error {
			doc, pub, err := p.publishOne(gctx, slug, batch.ID, format)
			if err != nil {
				return err
			}
			pub.PublishedAt = publishedAt
			docs[i] = doc
			batch.Publications[i] = pub
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		telemetry.Error("publish.failed", map[string]any{"batch_id": batch.ID, "slug": slug, "error": err})
		return Batch{}, err
	}

	for i, pub := range batch.Publications {
		doc := docs[i]
		if _, err := p.Store.Put(ctx, pub.LatestKey, doc.ContentType, bytes.NewReader(doc.Body)); err != nil {
			telemetry.Error("publish.latest_failed", map[string]any{"batch_id": batch.ID, "key": pub.LatestKey, "error": err})
			return Batch{}, fmt.Errorf("publish %s: store %s: %w", pub.Format, pub.LatestKey, err)
		}
	}

	if p.Recorder != nil {
		if err := p.Recorder.RecordBatch(ctx, batch.Publications); err != nil {
			return Batch{}, fmt.Errorf("record batch %s: %w", batch.ID, err)
		}
	}

	telemetry.Info("publish.complete", map[string]any{
		"batch_id": batch.ID,
		"slug":     slug,
		"count":    len(batch.Publications),
	})
	return batch, nil
}

func (p *Publisher) publishOne(ctx context.Context, slug, batchID string, format contract.Format) (contract.Document, Publication, error) {
	doc, err := p.Exporter.Export(ctx, format)
	if err != nil {
		return contract.Document{}, Publication{}, fmt.Errorf("publish %s: %w", format, err)
	}

	pub := Publication{
		ID:          uuid.NewString(),
		ProfileSlug: slug,
		Format:      format,
		StorageKey:  path.Join(slug, batchID, doc.FileName),
		LatestKey:   path.Join(slug, "latest", doc.FileName),
		SHA256:      util.Digest(doc.Body),
	}
	n, err := p.Store.Put(ctx, pub.StorageKey, doc.ContentType, bytes.NewReader(doc.Body))
	if err != nil {
		return contract.Document{}, Publication{}, fmt.Errorf("publish %s: store %s: %w", format, pub.StorageKey, err)
	}
	pub.SizeBytes = n
	return doc, pub, nil
}
