package models

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// maxDynamicAttempts bounds how many models from the provider's live listing
// are tried after the static preference list is exhausted.
const maxDynamicAttempts = 3

type attemptFunc func(ctx context.Context, model string) (*Reply, error)

// tryModels runs attempt against each candidate in order, continuing past any
// per-model failure. When the static list is exhausted it consults the
// dynamic listing, and only gives up once every candidate has failed. The
// terminal error wraps the last underlying failure so callers see the real
// cause.
func tryModels(ctx context.Context, static []string, attempt attemptFunc, listDynamic func(ctx context.Context) ([]string, error)) (*Reply, error) {
	tried := make(map[string]bool, len(static))
	var lastErr error

	for _, name := range static {
		if tried[name] {
			continue
		}
		tried[name] = true

		reply, err := attempt(ctx, name)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		slog.Debug("model attempt failed", "model", name, "error", err)
	}

	if listDynamic != nil {
		dynamic, err := listDynamic(ctx)
		if err != nil {
			slog.Debug("model listing failed", "error", err)
			if lastErr == nil {
				lastErr = err
			}
		}
		attempts := 0
		for _, name := range dynamic {
			if tried[name] {
				continue
			}
			if attempts >= maxDynamicAttempts {
				break
			}
			tried[name] = true
			attempts++

			reply, err := attempt(ctx, name)
			if err == nil {
				return reply, nil
			}
			lastErr = err
			slog.Debug("model attempt failed", "model", name, "error", err)
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no candidate models configured")
	}
	return nil, fmt.Errorf("all models failed: %w", lastErr)
}

// modelEntry is one row of a provider's model listing.
type modelEntry struct {
	Name    string
	Methods []string
}

// Name fragments that mark non-text or specialty models.
var nonTextModelPattern = regexp.MustCompile(`embed|imagen|image-generation|veo|video|audio|tts|aqa|vision`)

var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// rankGenerationModels filters a listing down to text-generation models and
// orders them newest-first: higher version numbers win, with a bump for
// "latest" and "flash" variants.
func rankGenerationModels(entries []modelEntry) []string {
	type ranked struct {
		name  string
		score float64
	}

	var candidates []ranked
	for _, entry := range entries {
		if !supportsGeneration(entry.Methods) {
			continue
		}
		name := strings.TrimPrefix(entry.Name, "models/")
		lower := strings.ToLower(name)
		if nonTextModelPattern.MatchString(lower) {
			continue
		}

		score := 0.0
		if match := versionPattern.FindString(lower); match != "" {
			if v, err := strconv.ParseFloat(match, 64); err == nil {
				score = v * 10
			}
		}
		if strings.Contains(lower, "latest") {
			score += 2
		}
		if strings.Contains(lower, "flash") {
			score++
		}
		candidates = append(candidates, ranked{name: name, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}

func supportsGeneration(methods []string) bool {
	for _, m := range methods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}
