package tools

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/store"
)

// maxDescriptionBytes bounds the detail payload's description field.
const maxDescriptionBytes = 1000

// jobView is the trimmed projection of a job offer returned to the model.
type jobView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Category     string   `json:"category"`
	ContractType string   `json:"contractType"`
	SalaryMin    int      `json:"salaryMin,omitempty"`
	SalaryMax    int      `json:"salaryMax,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

func toJobView(job store.JobOffer) jobView {
	return jobView{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.CompanyName,
		Location:     job.Location,
		Category:     job.Category,
		ContractType: job.ContractType,
		SalaryMin:    job.SalaryMin,
		SalaryMax:    job.SalaryMax,
		Skills:       job.Skills,
	}
}

// SearchJobOffersTool lists job offers matching free-text and structured
// filters.
type SearchJobOffersTool struct {
	Store store.Facade
}

func (t *SearchJobOffersTool) Spec() Spec {
	return Spec{
		Name:        "searchJobOffers",
		Description: "Search published job offers. All filters are optional; combine a free-text query with location, category or contract type.",
		Parameters: map[string]Param{
			"query":        {Type: "string", Description: "Free-text search over title, description and skills."},
			"location":     {Type: "string", Description: "City or region, e.g. 'Paris' or 'Remote'."},
			"category":     {Type: "string", Description: "Job category, e.g. 'Engineering'."},
			"contractType": {Type: "string", Description: "Contract type.", Enum: []string{"full-time", "part-time", "contract", "internship"}},
			"limit":        {Type: "integer", Description: "Maximum number of results (default 10, max 20)."},
		},
	}
}

func (t *SearchJobOffersTool) Execute(ctx context.Context, params map[string]any, _ session.Context) Outcome {
	limit := intArg(params, "limit")
	if limit <= 0 {
		limit = 10
	}
	if limit > maxListItems {
		limit = maxListItems
	}

	jobs, err := t.Store.ListJobOffers(ctx, store.JobFilters{
		Query:        stringArg(params, "query"),
		Location:     stringArg(params, "location"),
		Category:     stringArg(params, "category"),
		ContractType: stringArg(params, "contractType"),
		Limit:        limit,
	})
	if err != nil {
		return Fail("job search failed: %v", err)
	}

	views := make([]jobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, toJobView(job))
	}
	return OK(map[string]any{
		"count": len(views),
		"jobs":  views,
	})
}

// GetJobOfferDetailsTool fetches one job offer by id.
type GetJobOfferDetailsTool struct {
	Store store.Facade
}

func (t *GetJobOfferDetailsTool) Spec() Spec {
	return Spec{
		Name:        "getJobOfferDetails",
		Description: "Fetch the full details of a single job offer by its id.",
		Parameters: map[string]Param{
			"jobOfferId": {Type: "string", Description: "Identifier of the job offer."},
		},
		Required: []string{"jobOfferId"},
	}
}

func (t *GetJobOfferDetailsTool) Execute(ctx context.Context, params map[string]any, _ session.Context) Outcome {
	id := stringArg(params, "jobOfferId")
	if id == "" {
		return Fail("jobOfferId is required")
	}

	job, err := t.Store.GetJobOffer(ctx, id)
	if err != nil {
		return Fail("could not load job offer: %v", err)
	}

	view := toJobView(*job)
	description := job.Description
	if len(description) > maxDescriptionBytes {
		// Back the cut up to a rune boundary so the payload stays valid UTF-8.
		cut := maxDescriptionBytes
		for cut > 0 && !utf8.RuneStart(description[cut]) {
			cut--
		}
		description = strings.TrimSpace(description[:cut]) + "…"
	}
	return OK(map[string]any{
		"job":         view,
		"description": description,
		"postedAt":    job.CreatedAt.Format("2006-01-02"),
	})
}
