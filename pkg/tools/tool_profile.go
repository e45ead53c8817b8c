package tools

import (
	"context"

	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/store"
)

// GetMyProfileTool fetches the logged-in account's own profile.
type GetMyProfileTool struct {
	Store store.Facade
}

func (t *GetMyProfileTool) Spec() Spec {
	return Spec{
		Name:        "getMyProfile",
		Description: "Fetch the profile of the logged-in account, candidate or company.",
		Parameters:  map[string]Param{},
	}
}

func (t *GetMyProfileTool) Execute(ctx context.Context, _ map[string]any, sctx session.Context) Outcome {
	switch {
	case sctx.IsCandidate():
		prof, err := t.Store.GetCandidateProfile(ctx, sctx.CandidateID)
		if err != nil {
			return Fail("could not load profile: %v", err)
		}
		return OK(map[string]any{
			"role": string(session.RoleCandidate),
			"profile": map[string]any{
				"name":       prof.FirstName + " " + prof.LastName,
				"title":      prof.Title,
				"skills":     prof.Skills,
				"experience": prof.Experience,
				"location":   prof.Location,
				"bio":        prof.Bio,
			},
		})
	case sctx.IsCompany():
		prof, err := t.Store.GetCompanyProfile(ctx, sctx.CompanyID)
		if err != nil {
			return Fail("could not load profile: %v", err)
		}
		return OK(map[string]any{
			"role": string(session.RoleCompany),
			"profile": map[string]any{
				"name":        prof.Name,
				"industry":    prof.Industry,
				"location":    prof.Location,
				"description": prof.Description,
			},
		})
	default:
		return Fail("no candidate or company account is bound to this session")
	}
}
