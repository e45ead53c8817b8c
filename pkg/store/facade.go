// Package store exposes the platform's persisted entities behind a single
// data-access facade. Callers must treat every method as fallible and every
// result as possibly empty.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("store: not found")

// Facade is the data-access surface consumed by the tool catalog and the
// RAG indexers.
type Facade interface {
	ListJobOffers(ctx context.Context, filters JobFilters) ([]JobOffer, error)
	GetJobOffer(ctx context.Context, id string) (*JobOffer, error)

	CreateApplication(ctx context.Context, app Application) (*Application, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]Application, error)
	ListApplicationsByCompany(ctx context.Context, companyID string) ([]Application, error)

	AddFavorite(ctx context.Context, candidateID, jobOfferID string) (*Favorite, error)
	RemoveFavorite(ctx context.Context, candidateID, jobOfferID string) error
	ListFavorites(ctx context.Context, candidateID string) ([]Favorite, error)

	GetCandidateProfile(ctx context.Context, candidateID string) (*CandidateProfile, error)
	GetCompanyProfile(ctx context.Context, companyID string) (*CompanyProfile, error)

	CreateMessage(ctx context.Context, msg Message) (*Message, error)
	ListMessagesByApplication(ctx context.Context, applicationID string) ([]Message, error)

	GetDecisionProfile(ctx context.Context, applicationID string) (*DecisionProfile, error)
	GetCandidateStats(ctx context.Context, candidateID string) (*CandidateStats, error)
}
