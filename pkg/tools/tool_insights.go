package tools

import (
	"context"

	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/store"
)

// GetDecisionProfileTool fetches the assessment attached to an application.
type GetDecisionProfileTool struct {
	Store store.Facade
}

func (t *GetDecisionProfileTool) Spec() Spec {
	return Spec{
		Name:        "getDecisionProfile",
		Description: "Fetch the decision profile (assessment) recorded for one application.",
		Parameters: map[string]Param{
			"applicationId": {Type: "string", Description: "Identifier of the application."},
		},
		Required: []string{"applicationId"},
	}
}

func (t *GetDecisionProfileTool) Execute(ctx context.Context, params map[string]any, _ session.Context) Outcome {
	applicationID := stringArg(params, "applicationId")
	if applicationID == "" {
		return Fail("applicationId is required")
	}

	dp, err := t.Store.GetDecisionProfile(ctx, applicationID)
	if err != nil {
		return Fail("could not load decision profile: %v", err)
	}
	return OK(map[string]any{
		"decisionProfile": map[string]any{
			"applicationId":  dp.ApplicationID,
			"strengths":      dp.Strengths,
			"weaknesses":     dp.Weaknesses,
			"motivation":     dp.Motivation,
			"recommendation": dp.Recommendation,
			"score":          dp.Score,
		},
	})
}

// GetCandidateStatsTool aggregates the candidate's platform activity.
type GetCandidateStatsTool struct {
	Store store.Facade
}

func (t *GetCandidateStatsTool) Spec() Spec {
	return Spec{
		Name:        "getCandidateStats",
		Description: "Fetch aggregate statistics for the logged-in candidate: application counts by status and saved offers.",
		Parameters:  map[string]Param{},
	}
}

func (t *GetCandidateStatsTool) Execute(ctx context.Context, _ map[string]any, sctx session.Context) Outcome {
	candidateID, fail := requireCandidate(sctx)
	if fail != nil {
		return *fail
	}

	stats, err := t.Store.GetCandidateStats(ctx, candidateID)
	if err != nil {
		return Fail("could not load stats: %v", err)
	}
	return OK(map[string]any{"stats": stats})
}
