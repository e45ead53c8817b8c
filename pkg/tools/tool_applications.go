package tools

import (
	"context"

	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/store"
)

type applicationView struct {
	ID        string `json:"id"`
	JobTitle  string `json:"jobTitle"`
	JobID     string `json:"jobOfferId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func toApplicationView(app store.Application) applicationView {
	return applicationView{
		ID:        app.ID,
		JobTitle:  app.JobTitle,
		JobID:     app.JobOfferID,
		Status:    app.Status,
		CreatedAt: app.CreatedAt.Format("2006-01-02"),
	}
}

// GetMyApplicationsTool lists the current user's applications. Candidates see
// their own submissions, companies the ones received on their offers.
type GetMyApplicationsTool struct {
	Store store.Facade
}

func (t *GetMyApplicationsTool) Spec() Spec {
	return Spec{
		Name:        "getMyApplications",
		Description: "List the applications for the logged-in account: submitted ones for candidates, received ones for companies.",
		Parameters:  map[string]Param{},
	}
}

func (t *GetMyApplicationsTool) Execute(ctx context.Context, _ map[string]any, sctx session.Context) Outcome {
	var (
		apps []store.Application
		err  error
	)
	switch {
	case sctx.IsCandidate():
		apps, err = t.Store.ListApplicationsByCandidate(ctx, sctx.CandidateID)
	case sctx.IsCompany():
		apps, err = t.Store.ListApplicationsByCompany(ctx, sctx.CompanyID)
	default:
		return Fail("no candidate or company account is bound to this session")
	}
	if err != nil {
		return Fail("could not load applications: %v", err)
	}

	if len(apps) > maxListItems {
		apps = apps[:maxListItems]
	}
	views := make([]applicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, toApplicationView(app))
	}
	return OK(map[string]any{
		"count":        len(views),
		"applications": views,
	})
}

// CreateApplicationTool submits an application to a job offer. Candidate-only.
type CreateApplicationTool struct {
	Store store.Facade
}

func (t *CreateApplicationTool) Spec() Spec {
	return Spec{
		Name:        "createApplication",
		Description: "Apply to a job offer on behalf of the logged-in candidate, with an optional cover letter.",
		Parameters: map[string]Param{
			"jobOfferId":  {Type: "string", Description: "Identifier of the job offer to apply to."},
			"coverLetter": {Type: "string", Description: "Optional cover letter text."},
		},
		Required: []string{"jobOfferId"},
	}
}

func (t *CreateApplicationTool) Execute(ctx context.Context, params map[string]any, sctx session.Context) Outcome {
	candidateID, fail := requireCandidate(sctx)
	if fail != nil {
		return *fail
	}

	jobOfferID := stringArg(params, "jobOfferId")
	if jobOfferID == "" {
		return Fail("jobOfferId is required")
	}

	app, err := t.Store.CreateApplication(ctx, store.Application{
		JobOfferID:  jobOfferID,
		CandidateID: candidateID,
		CoverLetter: stringArg(params, "coverLetter"),
	})
	if err != nil {
		return Fail("could not create application: %v", err)
	}
	return OK(map[string]any{
		"application": toApplicationView(*app),
	})
}
