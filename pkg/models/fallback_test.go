package models

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestTryModelsReturnsFirstSuccess(t *testing.T) {
	var attempted []string
	attempt := func(_ context.Context, model string) (*Reply, error) {
		attempted = append(attempted, model)
		if model == "model-b" {
			return &Reply{Text: "ok"}, nil
		}
		return nil, fmt.Errorf("%s overloaded", model)
	}

	reply, err := tryModels(context.Background(), []string{"model-a", "model-b", "model-c"}, attempt, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "ok" {
		t.Fatalf("unexpected reply %q", reply.Text)
	}
	if !reflect.DeepEqual(attempted, []string{"model-a", "model-b"}) {
		t.Fatalf("expected attempts to stop at first success, got %v", attempted)
	}
}

func TestTryModelsExhaustionWrapsLastError(t *testing.T) {
	lastErr := errors.New("quota exceeded")
	attempt := func(_ context.Context, model string) (*Reply, error) {
		if model == "model-b" {
			return nil, lastErr
		}
		return nil, errors.New("earlier failure")
	}

	_, err := tryModels(context.Background(), []string{"model-a", "model-b"}, attempt, nil)
	if err == nil {
		t.Fatal("expected terminal error after exhaustion")
	}
	if !errors.Is(err, lastErr) {
		t.Fatalf("terminal error must wrap the last failure, got %v", err)
	}
}

func TestTryModelsConsultsDynamicListing(t *testing.T) {
	var attempted []string
	attempt := func(_ context.Context, model string) (*Reply, error) {
		attempted = append(attempted, model)
		if model == "dyn-2" {
			return &Reply{Text: "from listing"}, nil
		}
		return nil, errors.New("unavailable")
	}
	listDynamic := func(context.Context) ([]string, error) {
		return []string{"static-1", "dyn-1", "dyn-2"}, nil
	}

	reply, err := tryModels(context.Background(), []string{"static-1"}, attempt, listDynamic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "from listing" {
		t.Fatalf("unexpected reply %q", reply.Text)
	}
	// static-1 came back from the listing but was already tried.
	if !reflect.DeepEqual(attempted, []string{"static-1", "dyn-1", "dyn-2"}) {
		t.Fatalf("unexpected attempt order %v", attempted)
	}
}

func TestTryModelsBoundsDynamicAttempts(t *testing.T) {
	var attempts int
	attempt := func(_ context.Context, _ string) (*Reply, error) {
		attempts++
		return nil, errors.New("down")
	}
	listDynamic := func(context.Context) ([]string, error) {
		return []string{"dyn-1", "dyn-2", "dyn-3", "dyn-4", "dyn-5"}, nil
	}

	_, err := tryModels(context.Background(), nil, attempt, listDynamic)
	if err == nil {
		t.Fatal("expected failure")
	}
	if attempts != maxDynamicAttempts {
		t.Fatalf("expected %d dynamic attempts, got %d", maxDynamicAttempts, attempts)
	}
}

func TestTryModelsNoCandidates(t *testing.T) {
	attempt := func(_ context.Context, _ string) (*Reply, error) {
		t.Fatal("attempt must not run without candidates")
		return nil, nil
	}

	_, err := tryModels(context.Background(), nil, attempt, nil)
	if err == nil {
		t.Fatal("expected error when no candidates are configured")
	}
}

func TestRankGenerationModels(t *testing.T) {
	entries := []modelEntry{
		{Name: "models/gemini-1.5-pro", Methods: []string{"generateContent"}},
		{Name: "models/gemini-2.0-flash", Methods: []string{"generateContent"}},
		{Name: "models/text-embedding-004", Methods: []string{"embedContent"}},
		{Name: "models/gemini-2.0-pro-vision", Methods: []string{"generateContent"}},
		{Name: "models/imagen-3", Methods: []string{"generateContent"}},
		{Name: "models/gemini-1.5-flash-latest", Methods: []string{"generateContent"}},
	}

	got := rankGenerationModels(entries)
	want := []string{
		"gemini-2.0-flash",         // 2.0*10 + flash
		"gemini-1.5-flash-latest",  // 1.5*10 + latest + flash
		"gemini-1.5-pro",           // 1.5*10
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranking mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestRankGenerationModelsSkipsNonGeneration(t *testing.T) {
	entries := []modelEntry{
		{Name: "models/gemini-2.0-flash", Methods: []string{"countTokens"}},
	}
	if got := rankGenerationModels(entries); len(got) != 0 {
		t.Fatalf("expected no candidates without generateContent, got %v", got)
	}
}
