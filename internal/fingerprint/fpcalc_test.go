package fingerprint_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"cadence/internal/fingerprint"
)

type fakeExecutor struct {
	output []byte
	err    error

	binary string
	args   []string
}

func (f *fakeExecutor) Output(_ context.Context, binary string, args []string) ([]byte, error) {
	f.binary = binary
	f.args = args
	return f.output, f.err
}

func TestCalculateParsesFpcalcOutput(t *testing.T) {
	executor := &fakeExecutor{output: []byte(`{"duration":215.86,"fingerprint":"AQADtest"}`)}
	client, err := fingerprint.New("fpcalc", 120, fingerprint.WithExecutor(executor))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := client.Calculate(context.Background(), "/music/track.flac")
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if result.Value != "AQADtest" || result.Duration != 215.86 {
		t.Fatalf("unexpected fingerprint: %+v", result)
	}
	if executor.binary != "fpcalc" {
		t.Fatalf("unexpected binary: %q", executor.binary)
	}
	if len(executor.args) != 2 || executor.args[0] != "-json" || executor.args[1] != "/music/track.flac" {
		t.Fatalf("unexpected args: %v", executor.args)
	}
}

func TestCalculateMissingBinary(t *testing.T) {
	executor := &fakeExecutor{err: exec.ErrNotFound}
	client, err := fingerprint.New("fpcalc", 0, fingerprint.WithExecutor(executor))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Calculate(context.Background(), "/music/track.flac")
	if !errors.Is(err, fingerprint.ErrNoBackend) {
		t.Fatalf("expected ErrNoBackend, got %v", err)
	}
}

func TestCalculateToolFailure(t *testing.T) {
	executor := &fakeExecutor{err: errors.New("decode error")}
	client, err := fingerprint.New("fpcalc", 0, fingerprint.WithExecutor(executor))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Calculate(context.Background(), "/music/track.flac")
	if !errors.Is(err, fingerprint.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestCalculateRejectsEmptyFingerprint(t *testing.T) {
	executor := &fakeExecutor{output: []byte(`{"duration":100,"fingerprint":""}`)}
	client, err := fingerprint.New("fpcalc", 0, fingerprint.WithExecutor(executor))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.Calculate(context.Background(), "/music/track.flac"); !errors.Is(err, fingerprint.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestCalculateRequiresPath(t *testing.T) {
	client, err := fingerprint.New("fpcalc", 0, fingerprint.WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Calculate(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := fingerprint.New("", 0); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
