package tools

import (
	"context"

	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/store"
)

type favoriteView struct {
	ID       string `json:"id"`
	JobID    string `json:"jobOfferId"`
	JobTitle string `json:"jobTitle"`
	SavedAt  string `json:"savedAt"`
}

// GetMyFavoritesTool lists the candidate's saved job offers.
type GetMyFavoritesTool struct {
	Store store.Facade
}

func (t *GetMyFavoritesTool) Spec() Spec {
	return Spec{
		Name:        "getMyFavorites",
		Description: "List the job offers the logged-in candidate has saved as favorites.",
		Parameters:  map[string]Param{},
	}
}

func (t *GetMyFavoritesTool) Execute(ctx context.Context, _ map[string]any, sctx session.Context) Outcome {
	candidateID, fail := requireCandidate(sctx)
	if fail != nil {
		return *fail
	}

	favs, err := t.Store.ListFavorites(ctx, candidateID)
	if err != nil {
		return Fail("could not load favorites: %v", err)
	}

	if len(favs) > maxListItems {
		favs = favs[:maxListItems]
	}
	views := make([]favoriteView, 0, len(favs))
	for _, fav := range favs {
		views = append(views, favoriteView{
			ID:       fav.ID,
			JobID:    fav.JobOfferID,
			JobTitle: fav.JobTitle,
			SavedAt:  fav.CreatedAt.Format("2006-01-02"),
		})
	}
	return OK(map[string]any{
		"count":     len(views),
		"favorites": views,
	})
}

// AddToFavoritesTool saves a job offer for the candidate.
type AddToFavoritesTool struct {
	Store store.Facade
}

func (t *AddToFavoritesTool) Spec() Spec {
	return Spec{
		Name:        "addToFavorites",
		Description: "Save a job offer to the logged-in candidate's favorites.",
		Parameters: map[string]Param{
			"jobOfferId": {Type: "string", Description: "Identifier of the job offer to save."},
		},
		Required: []string{"jobOfferId"},
	}
}

func (t *AddToFavoritesTool) Execute(ctx context.Context, params map[string]any, sctx session.Context) Outcome {
	candidateID, fail := requireCandidate(sctx)
	if fail != nil {
		return *fail
	}

	jobOfferID := stringArg(params, "jobOfferId")
	if jobOfferID == "" {
		return Fail("jobOfferId is required")
	}

	fav, err := t.Store.AddFavorite(ctx, candidateID, jobOfferID)
	if err != nil {
		return Fail("could not add favorite: %v", err)
	}
	return OK(map[string]any{
		"favorite": favoriteView{
			ID:       fav.ID,
			JobID:    fav.JobOfferID,
			JobTitle: fav.JobTitle,
			SavedAt:  fav.CreatedAt.Format("2006-01-02"),
		},
	})
}

// RemoveFromFavoritesTool removes a saved job offer.
type RemoveFromFavoritesTool struct {
	Store store.Facade
}

func (t *RemoveFromFavoritesTool) Spec() Spec {
	return Spec{
		Name:        "removeFromFavorites",
		Description: "Remove a job offer from the logged-in candidate's favorites.",
		Parameters: map[string]Param{
			"jobOfferId": {Type: "string", Description: "Identifier of the job offer to remove."},
		},
		Required: []string{"jobOfferId"},
	}
}

func (t *RemoveFromFavoritesTool) Execute(ctx context.Context, params map[string]any, sctx session.Context) Outcome {
	candidateID, fail := requireCandidate(sctx)
	if fail != nil {
		return *fail
	}

	jobOfferID := stringArg(params, "jobOfferId")
	if jobOfferID == "" {
		return Fail("jobOfferId is required")
	}

	if err := t.Store.RemoveFavorite(ctx, candidateID, jobOfferID); err != nil {
		return Fail("could not remove favorite: %v", err)
	}
	return OK(map[string]any{
		"removed":    true,
		"jobOfferId": jobOfferID,
	})
}
