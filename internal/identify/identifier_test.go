package identify_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cadence/internal/acoustid"
	"cadence/internal/fingerprint"
	"cadence/internal/history"
	"cadence/internal/identify"
)

func strptr(s string) *string { return &s }

type fakeFingerprinter struct {
	result *fingerprint.Fingerprint
	err    error
	calls  int
}

func (f *fakeFingerprinter) Calculate(_ context.Context, _ string) (*fingerprint.Fingerprint, error) {
	f.calls++
	return f.result, f.err
}

type fakeClient struct {
	candidates  []acoustid.TrackMetadata
	lookupErr   error
	submitErr   error
	submissions []acoustid.Submission
}

func (f *fakeClient) LookupTrackMetadata(_ context.Context, _ string, _ float64, registry *acoustid.SubmissionRegistry) ([]acoustid.TrackMetadata, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if registry != nil {
		for _, candidate := range f.candidates {
			registry.Record(candidate.Title, candidate.Artist)
		}
	}
	return f.candidates, nil
}

func (f *fakeClient) Submit(_ context.Context, sub acoustid.Submission) error {
	f.submissions = append(f.submissions, sub)
	return f.submitErr
}

func goodFingerprint() *fingerprint.Fingerprint {
	return &fingerprint.Fingerprint{Duration: 215.8, Value: "AQADtest"}
}

func TestIdentifyReturnsCandidatesAndRecordsHistory(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	client := &fakeClient{candidates: []acoustid.TrackMetadata{
		{Title: "Thunderstruck", Artist: "AC/DC", Album: strptr("The Razor's Edge")},
	}}
	identifier, err := identify.New(&fakeFingerprinter{result: goodFingerprint()}, client, nil, identify.WithHistory(store))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	candidates, err := identifier.Identify(context.Background(), "/music/track.flac")
	if err != nil {
		t.Fatalf("Identify returned error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Artist != "AC/DC" {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}

	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].SourcePath != "/music/track.flac" {
		t.Fatalf("unexpected history entries: %+v", entries)
	}
}

func TestIdentifyPropagatesFingerprintError(t *testing.T) {
	fingerprinter := &fakeFingerprinter{err: fingerprint.ErrNoBackend}
	identifier, err := identify.New(fingerprinter, &fakeClient{}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = identifier.Identify(context.Background(), "/music/track.flac")
	if !errors.Is(err, fingerprint.ErrNoBackend) {
		t.Fatalf("expected fingerprint error, got %v", err)
	}
}

func TestIdentifyPropagatesLookupError(t *testing.T) {
	client := &fakeClient{lookupErr: &acoustid.WebServiceError{Status: "error", Message: "status: error"}}
	identifier, err := identify.New(&fakeFingerprinter{result: goodFingerprint()}, client, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = identifier.Identify(context.Background(), "/music/track.flac")
	var wsErr *acoustid.WebServiceError
	if !errors.As(err, &wsErr) {
		t.Fatalf("expected WebServiceError, got %v", err)
	}
}

func TestSubmitSendsMetadata(t *testing.T) {
	client := &fakeClient{}
	identifier, err := identify.New(&fakeFingerprinter{result: goodFingerprint()}, client, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	meta := acoustid.TrackMetadata{
		Title:       "Foo",
		Artist:      "Bar",
		Album:       strptr("Baz"),
		AlbumArtist: strptr("Bar"),
	}
	if !identifier.Submit(context.Background(), "/music/track.flac", meta, 1990) {
		t.Fatal("expected submission to succeed")
	}
	if len(client.submissions) != 1 {
		t.Fatalf("expected one submission, got %d", len(client.submissions))
	}
	sub := client.submissions[0]
	if sub.Title != "Foo" || sub.Artist != "Bar" || sub.Album != "Baz" || sub.AlbumArtist != "Bar" || sub.Year != 1990 {
		t.Fatalf("unexpected submission: %+v", sub)
	}
	if sub.Fingerprint != "AQADtest" || sub.Duration != 215.8 {
		t.Fatalf("expected fingerprint fields, got %+v", sub)
	}
}

func TestSubmitSuppressedAfterIdentify(t *testing.T) {
	client := &fakeClient{candidates: []acoustid.TrackMetadata{{Title: "Foo", Artist: "Bar"}}}
	identifier, err := identify.New(&fakeFingerprinter{result: goodFingerprint()}, client, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := identifier.Identify(context.Background(), "/music/track.flac"); err != nil {
		t.Fatalf("Identify returned error: %v", err)
	}
	// The lookup already told us about this track; resubmitting it would
	// just duplicate data the service has.
	if identifier.Submit(context.Background(), "/music/track.flac", acoustid.TrackMetadata{Title: "Foo", Artist: "Bar"}, 0) {
		t.Fatal("expected submission to be suppressed")
	}
	if len(client.submissions) != 0 {
		t.Fatalf("expected no submissions, got %+v", client.submissions)
	}
}

func TestSubmitFingerprintFailureIsNonFatal(t *testing.T) {
	fingerprinter := &fakeFingerprinter{err: fingerprint.ErrGeneration}
	client := &fakeClient{}
	identifier, err := identify.New(fingerprinter, client, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if identifier.Submit(context.Background(), "/music/track.flac", acoustid.TrackMetadata{Title: "Foo", Artist: "Bar"}, 0) {
		t.Fatal("expected submission to fail")
	}
	if len(client.submissions) != 0 {
		t.Fatalf("expected no submissions, got %+v", client.submissions)
	}
}

func TestSubmitServiceFailureIsNonFatal(t *testing.T) {
	client := &fakeClient{submitErr: &acoustid.WebServiceError{Message: "submit returned HTTP 500"}}
	identifier, err := identify.New(&fakeFingerprinter{result: goodFingerprint()}, client, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if identifier.Submit(context.Background(), "/music/track.flac", acoustid.TrackMetadata{Title: "Foo", Artist: "Bar"}, 0) {
		t.Fatal("expected submission to fail")
	}
}
