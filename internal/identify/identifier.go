package identify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cadence/internal/acoustid"
	"cadence/internal/fingerprint"
	"cadence/internal/history"
	"cadence/internal/logging"
)

// Fingerprinter produces acoustic fingerprints for audio files.
type Fingerprinter interface {
	Calculate(ctx context.Context, path string) (*fingerprint.Fingerprint, error)
}

// LookupClient covers the AcoustID operations the identifier needs.
type LookupClient interface {
	LookupTrackMetadata(ctx context.Context, fingerprint string, duration float64, registry *acoustid.SubmissionRegistry) ([]acoustid.TrackMetadata, error)
	Submit(ctx context.Context, sub acoustid.Submission) error
}

// Option configures an Identifier.
type Option func(*Identifier)

// WithHistory records identification candidates to the given store.
func WithHistory(store *history.Store) Option {
	return func(i *Identifier) {
		i.store = store
	}
}

// WithLogger sets the logger used for workflow diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Identifier) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Identifier ties fingerprinting, the AcoustID client, the submission
// registry, and the history store into the identify and submit workflows.
type Identifier struct {
	fingerprinter Fingerprinter
	client        LookupClient
	registry      *acoustid.SubmissionRegistry
	store         *history.Store
	logger        *slog.Logger
}

// New constructs an Identifier.
func New(fingerprinter Fingerprinter, client LookupClient, registry *acoustid.SubmissionRegistry, opts ...Option) (*Identifier, error) {
	if fingerprinter == nil {
		return nil, errors.New("fingerprinter required")
	}
	if client == nil {
		return nil, errors.New("acoustid client required")
	}
	if registry == nil {
		registry = acoustid.NewSubmissionRegistry()
	}
	identifier := &Identifier{
		fingerprinter: fingerprinter,
		client:        client,
		registry:      registry,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(identifier)
	}
	return identifier, nil
}

// Registry exposes the submission registry shared by this identifier.
func (i *Identifier) Registry() *acoustid.SubmissionRegistry {
	return i.registry
}

// Identify fingerprints the file at path, looks it up, and returns every
// plausible metadata candidate. Candidates are recorded to the history store
// on a best-effort basis.
func (i *Identifier) Identify(ctx context.Context, path string) ([]acoustid.TrackMetadata, error) {
	result, err := i.fingerprinter.Calculate(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fingerprint %s: %w", path, err)
	}
	i.logger.Debug("fingerprint computed",
		logging.String("path", path),
		logging.Float64("duration", result.Duration),
	)

	candidates, err := i.client.LookupTrackMetadata(ctx, result.Value, result.Duration, i.registry)
	if err != nil {
		return nil, err
	}
	i.logger.Info("lookup complete",
		logging.String("path", path),
		logging.Int("candidates", len(candidates)),
	)

	i.recordHistory(ctx, path, candidates)
	return candidates, nil
}

// Submit sends the file's fingerprint with the given metadata for inclusion
// in the AcoustID database. Pairs this process already identified are
// suppressed to avoid duplicate submissions. Every failure is logged and
// folded into the boolean result.
func (i *Identifier) Submit(ctx context.Context, path string, meta acoustid.TrackMetadata, year int) bool {
	if !i.registry.Record(meta.Title, meta.Artist) {
		i.logger.Debug("submission suppressed, track already identified",
			logging.String("title", meta.Title),
			logging.String("artist", meta.Artist),
		)
		return false
	}

	result, err := i.fingerprinter.Calculate(ctx, path)
	if err != nil {
		i.logger.Error("fingerprint generation failed", logging.Error(err), logging.String("path", path))
		return false
	}

	sub := acoustid.Submission{
		Duration:    result.Duration,
		Fingerprint: result.Value,
		Title:       meta.Title,
		Artist:      meta.Artist,
		Year:        year,
	}
	if meta.Album != nil {
		sub.Album = *meta.Album
	}
	if meta.AlbumArtist != nil {
		sub.AlbumArtist = *meta.AlbumArtist
	}

	if err := i.client.Submit(ctx, sub); err != nil {
		i.logger.Error("submission failed", logging.Error(err), logging.String("path", path))
		return false
	}
	i.logger.Info("fingerprint submitted",
		logging.String("title", meta.Title),
		logging.String("artist", meta.Artist),
	)
	return true
}

func (i *Identifier) recordHistory(ctx context.Context, path string, candidates []acoustid.TrackMetadata) {
	if i.store == nil {
		return
	}
	for _, candidate := range candidates {
		if err := i.store.Record(ctx, path, candidate); err != nil {
			i.logger.Warn("history record failed", logging.Error(err), logging.String("path", path))
			return
		}
	}
}
