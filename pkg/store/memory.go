package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory implements Facade with in-process maps. It backs tests and keyless
// local runs.
type Memory struct {
	mu           sync.RWMutex
	nextID       int64
	jobs         map[string]JobOffer
	applications map[string]Application
	favorites    map[string]Favorite
	candidates   map[string]CandidateProfile
	companies    map[string]CompanyProfile
	messages     map[string]Message
	decisions    map[string]DecisionProfile // keyed by application id
}

func NewMemory() *Memory {
	return &Memory{
		jobs:         make(map[string]JobOffer),
		applications: make(map[string]Application),
		favorites:    make(map[string]Favorite),
		candidates:   make(map[string]CandidateProfile),
		companies:    make(map[string]CompanyProfile),
		messages:     make(map[string]Message),
		decisions:    make(map[string]DecisionProfile),
	}
}

func (m *Memory) newID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// PutJobOffer inserts or replaces a job offer. Used by seeding and tests.
func (m *Memory) PutJobOffer(job JobOffer) JobOffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.ID == "" {
		job.ID = m.newID("job")
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	m.jobs[job.ID] = job
	return job
}

// PutCandidateProfile inserts or replaces a candidate profile.
func (m *Memory) PutCandidateProfile(p CandidateProfile) CandidateProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = m.newID("cand")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	m.candidates[p.ID] = p
	return p
}

// PutCompanyProfile inserts or replaces a company profile.
func (m *Memory) PutCompanyProfile(p CompanyProfile) CompanyProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = m.newID("comp")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	m.companies[p.ID] = p
	return p
}

// PutDecisionProfile inserts or replaces a decision profile.
func (m *Memory) PutDecisionProfile(dp DecisionProfile) DecisionProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dp.ID == "" {
		dp.ID = m.newID("dp")
	}
	if dp.CreatedAt.IsZero() {
		dp.CreatedAt = time.Now().UTC()
	}
	m.decisions[dp.ApplicationID] = dp
	return dp
}

func (m *Memory) ListJobOffers(_ context.Context, filters JobFilters) ([]JobOffer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := func(job JobOffer) bool {
		if filters.Location != "" && !containsFold(job.Location, filters.Location) {
			return false
		}
		if filters.Category != "" && !containsFold(job.Category, filters.Category) {
			return false
		}
		if filters.ContractType != "" && !strings.EqualFold(job.ContractType, filters.ContractType) {
			return false
		}
		if filters.Query != "" {
			blob := strings.ToLower(job.Title + " " + job.Description + " " + strings.Join(job.Skills, " "))
			for _, word := range strings.Fields(strings.ToLower(filters.Query)) {
				if strings.Contains(blob, word) {
					return true
				}
			}
			return false
		}
		return true
	}

	var out []JobOffer
	for _, job := range m.jobs {
		if matches(job) {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (m *Memory) GetJobOffer(_ context.Context, id string) (*JobOffer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job offer %s: %w", id, ErrNotFound)
	}
	return &job, nil
}

func (m *Memory) CreateApplication(_ context.Context, app Application) (*Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[app.JobOfferID]
	if !ok {
		return nil, fmt.Errorf("job offer %s: %w", app.JobOfferID, ErrNotFound)
	}
	for _, existing := range m.applications {
		if existing.CandidateID == app.CandidateID && existing.JobOfferID == app.JobOfferID {
			return nil, fmt.Errorf("store: already applied to job offer %s", app.JobOfferID)
		}
	}

	app.ID = m.newID("app")
	app.CompanyID = job.CompanyID
	app.JobTitle = job.Title
	if app.Status == "" {
		app.Status = "pending"
	}
	app.CreatedAt = time.Now().UTC()
	m.applications[app.ID] = app
	return &app, nil
}

func (m *Memory) ListApplicationsByCandidate(_ context.Context, candidateID string) ([]Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Application
	for _, app := range m.applications {
		if app.CandidateID == candidateID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ListApplicationsByCompany(_ context.Context, companyID string) ([]Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Application
	for _, app := range m.applications {
		if app.CompanyID == companyID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) AddFavorite(_ context.Context, candidateID, jobOfferID string) (*Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobOfferID]
	if !ok {
		return nil, fmt.Errorf("job offer %s: %w", jobOfferID, ErrNotFound)
	}
	for _, fav := range m.favorites {
		if fav.CandidateID == candidateID && fav.JobOfferID == jobOfferID {
			return &fav, nil
		}
	}

	fav := Favorite{
		ID:          m.newID("fav"),
		CandidateID: candidateID,
		JobOfferID:  jobOfferID,
		JobTitle:    job.Title,
		CreatedAt:   time.Now().UTC(),
	}
	m.favorites[fav.ID] = fav
	return &fav, nil
}

func (m *Memory) RemoveFavorite(_ context.Context, candidateID, jobOfferID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, fav := range m.favorites {
		if fav.CandidateID == candidateID && fav.JobOfferID == jobOfferID {
			delete(m.favorites, id)
			return nil
		}
	}
	return fmt.Errorf("favorite for job offer %s: %w", jobOfferID, ErrNotFound)
}

func (m *Memory) ListFavorites(_ context.Context, candidateID string) ([]Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Favorite
	for _, fav := range m.favorites {
		if fav.CandidateID == candidateID {
			out = append(out, fav)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) GetCandidateProfile(_ context.Context, candidateID string) (*CandidateProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.candidates[candidateID]
	if !ok {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, ErrNotFound)
	}
	return &p, nil
}

func (m *Memory) GetCompanyProfile(_ context.Context, companyID string) (*CompanyProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.companies[companyID]
	if !ok {
		return nil, fmt.Errorf("company %s: %w", companyID, ErrNotFound)
	}
	return &p, nil
}

func (m *Memory) CreateMessage(_ context.Context, msg Message) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.applications[msg.ApplicationID]; !ok {
		return nil, fmt.Errorf("application %s: %w", msg.ApplicationID, ErrNotFound)
	}
	msg.ID = m.newID("msg")
	msg.CreatedAt = time.Now().UTC()
	m.messages[msg.ID] = msg
	return &msg, nil
}

func (m *Memory) ListMessagesByApplication(_ context.Context, applicationID string) ([]Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Message
	for _, msg := range m.messages {
		if msg.ApplicationID == applicationID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) GetDecisionProfile(_ context.Context, applicationID string) (*DecisionProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dp, ok := m.decisions[applicationID]
	if !ok {
		return nil, fmt.Errorf("decision profile for application %s: %w", applicationID, ErrNotFound)
	}
	return &dp, nil
}

func (m *Memory) GetCandidateStats(_ context.Context, candidateID string) (*CandidateStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := CandidateStats{CandidateID: candidateID}
	for _, app := range m.applications {
		if app.CandidateID != candidateID {
			continue
		}
		stats.TotalApplications++
		switch app.Status {
		case "pending":
			stats.PendingApplications++
		case "accepted":
			stats.AcceptedApplications++
		case "rejected":
			stats.RejectedApplications++
		}
	}
	for _, fav := range m.favorites {
		if fav.CandidateID == candidateID {
			stats.FavoriteCount++
		}
	}
	return &stats, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
