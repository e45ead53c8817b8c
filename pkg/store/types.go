package store

import "time"

// JobOffer is a published job listing.
type JobOffer struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"companyId"`
	CompanyName  string    `json:"companyName"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Category     string    `json:"category"`
	ContractType string    `json:"contractType"`
	SalaryMin    int       `json:"salaryMin"`
	SalaryMax    int       `json:"salaryMax"`
	Skills       []string  `json:"skills"`
	CreatedAt    time.Time `json:"createdAt"`
}

// JobFilters narrows a job offer listing. Zero values mean "no filter".
type JobFilters struct {
	Query        string
	Location     string
	Category     string
	ContractType string
	Limit        int
}

// Application links a candidate to a job offer.
type Application struct {
	ID          string    `json:"id"`
	JobOfferID  string    `json:"jobOfferId"`
	JobTitle    string    `json:"jobTitle"`
	CandidateID string    `json:"candidateId"`
	CompanyID   string    `json:"companyId"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Favorite marks a job offer saved by a candidate.
type Favorite struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	JobOfferID  string    `json:"jobOfferId"`
	JobTitle    string    `json:"jobTitle"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CandidateProfile is the candidate-side account profile.
type CandidateProfile struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Title      string    `json:"title"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	Location   string    `json:"location"`
	Bio        string    `json:"bio"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CompanyProfile is the company-side account profile.
type CompanyProfile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Message is one chat message exchanged on an application thread.
type Message struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"applicationId"`
	SenderID      string    `json:"senderId"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DecisionProfile is the recruiter-facing assessment attached to an application.
type DecisionProfile struct {
	ID             string    `json:"id"`
	ApplicationID  string    `json:"applicationId"`
	CandidateID    string    `json:"candidateId"`
	Strengths      []string  `json:"strengths"`
	Weaknesses     []string  `json:"weaknesses"`
	Motivation     string    `json:"motivation"`
	Recommendation string    `json:"recommendation"`
	Score          float64   `json:"score"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CandidateStats aggregates a candidate's activity on the platform.
type CandidateStats struct {
	CandidateID          string `json:"candidateId"`
	TotalApplications    int    `json:"totalApplications"`
	PendingApplications  int    `json:"pendingApplications"`
	AcceptedApplications int    `json:"acceptedApplications"`
	RejectedApplications int    `json:"rejectedApplications"`
	FavoriteCount        int    `json:"favoriteCount"`
}
