package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tinytelemetry/sheepcount/internal/model"
)

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func runWithTimeout(t *testing.T, ctx context.Context, aggregates []model.YearlyAggregate, opts Options) error {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- Run(ctx, aggregates, opts) }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRun_QuitKeyEndsProgram(t *testing.T) {
	var out bytes.Buffer
	err := runWithTimeout(t, context.Background(), years(3), Options{
		Spec:   testSpec(),
		Input:  strings.NewReader("q"),
		Output: &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_InputFailureKeepsCause(t *testing.T) {
	cause := errors.New("input device went away")
	err := runWithTimeout(t, context.Background(), years(3), Options{
		Spec:   testSpec(),
		Input:  failingReader{err: cause},
		Output: &bytes.Buffer{},
	})
	if !errors.Is(err, model.ErrRender) {
		t.Fatalf("error = %v, want render kind", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("error = %v, want the input error preserved", err)
	}
	if errors.Is(err, ErrNoTerminal) {
		t.Fatalf("error = %v, classified as missing terminal", err)
	}
}

func TestRun_EmptyIsRenderError(t *testing.T) {
	err := Run(context.Background(), nil, Options{Spec: testSpec()})
	if !errors.Is(err, model.ErrRender) {
		t.Fatalf("error = %v, want render kind", err)
	}
}
