package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobdeck/jobdeck/pkg/store"
)

// Indexer materializes facade entities into searchable documents. Every
// indexing method fetches its own entity set; a fetch failure yields an empty
// slice so a degraded index never fails the surrounding turn.
type Indexer struct {
	store store.Facade
}

func NewIndexer(facade store.Facade) *Indexer {
	return &Indexer{store: facade}
}

func docID(t DocType, entityID string) string {
	return fmt.Sprintf("%s_%s", t, entityID)
}

// JobOffers indexes every listed job offer.
func (ix *Indexer) JobOffers(ctx context.Context) []Document {
	jobs, err := ix.store.ListJobOffers(ctx, store.JobFilters{})
	if err != nil {
		return nil
	}

	docs := make([]Document, 0, len(jobs))
	for _, job := range jobs {
		content := fmt.Sprintf("%s at %s. %s Location: %s. Category: %s. Contract: %s. Skills: %s.",
			job.Title, job.CompanyName, job.Description, job.Location, job.Category,
			job.ContractType, strings.Join(job.Skills, ", "))
		docs = append(docs, Document{
			ID:      docID(DocJobOffer, job.ID),
			Type:    DocJobOffer,
			Content: content,
			Metadata: map[string]any{
				"jobOfferId":   job.ID,
				"title":        job.Title,
				"company":      job.CompanyName,
				"companyId":    job.CompanyID,
				"location":     job.Location,
				"category":     job.Category,
				"contractType": job.ContractType,
				"salaryMin":    job.SalaryMin,
				"salaryMax":    job.SalaryMax,
			},
			CreatedAt: job.CreatedAt,
		})
	}
	return docs
}

// CandidateProfile indexes the candidate's own profile.
func (ix *Indexer) CandidateProfile(ctx context.Context, candidateID string) []Document {
	prof, err := ix.store.GetCandidateProfile(ctx, candidateID)
	if err != nil || prof == nil {
		return nil
	}

	content := fmt.Sprintf("%s %s, %s. Skills: %s. Experience: %s Location: %s. %s",
		prof.FirstName, prof.LastName, prof.Title, strings.Join(prof.Skills, ", "),
		prof.Experience, prof.Location, prof.Bio)
	return []Document{{
		ID:      docID(DocUserProfile, prof.ID),
		Type:    DocUserProfile,
		Content: content,
		Metadata: map[string]any{
			"candidateId": prof.ID,
			"title":       prof.Title,
			"location":    prof.Location,
		},
		CreatedAt: prof.CreatedAt,
	}}
}

// CompanyProfile indexes a company's own profile.
func (ix *Indexer) CompanyProfile(ctx context.Context, companyID string) []Document {
	prof, err := ix.store.GetCompanyProfile(ctx, companyID)
	if err != nil || prof == nil {
		return nil
	}

	content := fmt.Sprintf("%s, %s company in %s. %s",
		prof.Name, prof.Industry, prof.Location, prof.Description)
	return []Document{{
		ID:      docID(DocCompany, prof.ID),
		Type:    DocCompany,
		Content: content,
		Metadata: map[string]any{
			"companyId": prof.ID,
			"title":     prof.Name,
			"location":  prof.Location,
		},
		CreatedAt: prof.CreatedAt,
	}}
}

// Applications indexes the candidate's applications.
func (ix *Indexer) Applications(ctx context.Context, candidateID string) []Document {
	apps, err := ix.store.ListApplicationsByCandidate(ctx, candidateID)
	if err != nil {
		return nil
	}

	docs := make([]Document, 0, len(apps))
	for _, app := range apps {
		content := fmt.Sprintf("Application for %s, status %s, submitted %s.",
			app.JobTitle, app.Status, app.CreatedAt.Format("2006-01-02"))
		docs = append(docs, Document{
			ID:      docID(DocApplication, app.ID),
			Type:    DocApplication,
			Content: content,
			Metadata: map[string]any{
				"applicationId": app.ID,
				"jobOfferId":    app.JobOfferID,
				"title":         app.JobTitle,
				"status":        app.Status,
			},
			CreatedAt: app.CreatedAt,
		})
	}
	return docs
}

// Favorites indexes the candidate's saved job offers.
func (ix *Indexer) Favorites(ctx context.Context, candidateID string) []Document {
	favs, err := ix.store.ListFavorites(ctx, candidateID)
	if err != nil {
		return nil
	}

	docs := make([]Document, 0, len(favs))
	for _, fav := range favs {
		docs = append(docs, Document{
			ID:      docID(DocFavorite, fav.ID),
			Type:    DocFavorite,
			Content: fmt.Sprintf("Saved job offer: %s.", fav.JobTitle),
			Metadata: map[string]any{
				"favoriteId": fav.ID,
				"jobOfferId": fav.JobOfferID,
				"title":      fav.JobTitle,
			},
			CreatedAt: fav.CreatedAt,
		})
	}
	return docs
}

// DecisionProfiles indexes the decision profiles attached to the candidate's
// applications.
func (ix *Indexer) DecisionProfiles(ctx context.Context, candidateID string) []Document {
	apps, err := ix.store.ListApplicationsByCandidate(ctx, candidateID)
	if err != nil {
		return nil
	}

	var docs []Document
	for _, app := range apps {
		dp, err := ix.store.GetDecisionProfile(ctx, app.ID)
		if err != nil || dp == nil {
			continue
		}
		content := fmt.Sprintf("Assessment for application to %s: strengths %s; weaknesses %s. Motivation: %s Recommendation: %s Score: %.1f.",
			app.JobTitle, strings.Join(dp.Strengths, ", "), strings.Join(dp.Weaknesses, ", "),
			dp.Motivation, dp.Recommendation, dp.Score)
		docs = append(docs, Document{
			ID:      docID(DocDecisionProfile, dp.ID),
			Type:    DocDecisionProfile,
			Content: content,
			Metadata: map[string]any{
				"decisionProfileId": dp.ID,
				"applicationId":     dp.ApplicationID,
				"score":             dp.Score,
			},
			CreatedAt: dp.CreatedAt,
		})
	}
	return docs
}

// Messages indexes the message threads on the candidate's applications.
func (ix *Indexer) Messages(ctx context.Context, candidateID string) []Document {
	apps, err := ix.store.ListApplicationsByCandidate(ctx, candidateID)
	if err != nil {
		return nil
	}

	var docs []Document
	for _, app := range apps {
		msgs, err := ix.store.ListMessagesByApplication(ctx, app.ID)
		if err != nil {
			continue
		}
		for _, msg := range msgs {
			docs = append(docs, Document{
				ID:      docID(DocMessage, msg.ID),
				Type:    DocMessage,
				Content: fmt.Sprintf("Message on application to %s: %s", app.JobTitle, msg.Content),
				Metadata: map[string]any{
					"messageId":     msg.ID,
					"applicationId": msg.ApplicationID,
					"senderId":      msg.SenderID,
				},
				CreatedAt: msg.CreatedAt,
			})
		}
	}
	return docs
}

// AllUserData concatenates every candidate-scoped index. Ids are namespaced by
// type so no deduplication is needed.
func (ix *Indexer) AllUserData(ctx context.Context, candidateID string) []Document {
	var docs []Document
	docs = append(docs, ix.CandidateProfile(ctx, candidateID)...)
	docs = append(docs, ix.Applications(ctx, candidateID)...)
	docs = append(docs, ix.Favorites(ctx, candidateID)...)
	docs = append(docs, ix.DecisionProfiles(ctx, candidateID)...)
	docs = append(docs, ix.Messages(ctx, candidateID)...)
	return docs
}

// AllJobOffers is the platform-wide job offer index.
func (ix *Indexer) AllJobOffers(ctx context.Context) []Document {
	return ix.JobOffers(ctx)
}
