package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Facade on top of a pgx connection pool.
type Postgres struct {
	DB *pgxpool.Pool
}

// NewPostgres connects to Postgres and returns a Postgres-backed Facade.
func NewPostgres(ctx context.Context, connStr string) (*Postgres, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &Postgres{DB: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS job_offers (
        id            TEXT PRIMARY KEY,
        company_id    TEXT NOT NULL,
        company_name  TEXT NOT NULL DEFAULT '',
        title         TEXT NOT NULL,
        description   TEXT NOT NULL DEFAULT '',
        location      TEXT NOT NULL DEFAULT '',
        category      TEXT NOT NULL DEFAULT '',
        contract_type TEXT NOT NULL DEFAULT '',
        salary_min    INT NOT NULL DEFAULT 0,
        salary_max    INT NOT NULL DEFAULT 0,
        skills        TEXT[] NOT NULL DEFAULT '{}',
        created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS applications (
        id           TEXT PRIMARY KEY,
        job_offer_id TEXT NOT NULL REFERENCES job_offers(id),
        candidate_id TEXT NOT NULL,
        company_id   TEXT NOT NULL,
        status       TEXT NOT NULL DEFAULT 'pending',
        cover_letter TEXT NOT NULL DEFAULT '',
        created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
        UNIQUE (job_offer_id, candidate_id)
);

CREATE TABLE IF NOT EXISTS favorites (
        id           TEXT PRIMARY KEY,
        candidate_id TEXT NOT NULL,
        job_offer_id TEXT NOT NULL REFERENCES job_offers(id),
        created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
        UNIQUE (candidate_id, job_offer_id)
);

CREATE TABLE IF NOT EXISTS candidate_profiles (
        id         TEXT PRIMARY KEY,
        user_id    TEXT NOT NULL,
        first_name TEXT NOT NULL DEFAULT '',
        last_name  TEXT NOT NULL DEFAULT '',
        title      TEXT NOT NULL DEFAULT '',
        skills     TEXT[] NOT NULL DEFAULT '{}',
        experience TEXT NOT NULL DEFAULT '',
        location   TEXT NOT NULL DEFAULT '',
        bio        TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS company_profiles (
        id          TEXT PRIMARY KEY,
        user_id     TEXT NOT NULL,
        name        TEXT NOT NULL,
        industry    TEXT NOT NULL DEFAULT '',
        location    TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS messages (
        id             TEXT PRIMARY KEY,
        application_id TEXT NOT NULL REFERENCES applications(id),
        sender_id      TEXT NOT NULL,
        content        TEXT NOT NULL,
        created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS decision_profiles (
        id             TEXT PRIMARY KEY,
        application_id TEXT NOT NULL UNIQUE REFERENCES applications(id),
        candidate_id   TEXT NOT NULL,
        strengths      TEXT[] NOT NULL DEFAULT '{}',
        weaknesses     TEXT[] NOT NULL DEFAULT '{}',
        motivation     TEXT NOT NULL DEFAULT '',
        recommendation TEXT NOT NULL DEFAULT '',
        score          DOUBLE PRECISION NOT NULL DEFAULT 0,
        created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// CreateSchema ensures all facade tables exist.
func (p *Postgres) CreateSchema(ctx context.Context) error {
	if _, err := p.DB.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	p.DB.Close()
	return nil
}

const jobOfferColumns = `id, company_id, company_name, title, description, location, category, contract_type, salary_min, salary_max, skills, created_at`

func scanJobOffer(row pgx.Row) (*JobOffer, error) {
	var job JobOffer
	err := row.Scan(&job.ID, &job.CompanyID, &job.CompanyName, &job.Title, &job.Description,
		&job.Location, &job.Category, &job.ContractType, &job.SalaryMin, &job.SalaryMax,
		&job.Skills, &job.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (p *Postgres) ListJobOffers(ctx context.Context, filters JobFilters) ([]JobOffer, error) {
	query := `
        SELECT ` + jobOfferColumns + `
        FROM job_offers
        WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
               OR array_to_string(skills, ' ') ILIKE '%' || $1 || '%')
          AND ($2 = '' OR location ILIKE '%' || $2 || '%')
          AND ($3 = '' OR category ILIKE '%' || $3 || '%')
          AND ($4 = '' OR contract_type ILIKE $4)
        ORDER BY created_at DESC
        LIMIT $5;`

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := p.DB.Query(ctx, query, filters.Query, filters.Location, filters.Category, filters.ContractType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []JobOffer
	for rows.Next() {
		job, err := scanJobOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *job)
	}
	return offers, rows.Err()
}

func (p *Postgres) GetJobOffer(ctx context.Context, id string) (*JobOffer, error) {
	row := p.DB.QueryRow(ctx, `SELECT `+jobOfferColumns+` FROM job_offers WHERE id = $1;`, id)
	job, err := scanJobOffer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("job offer %s: %w", id, ErrNotFound)
	}
	return job, err
}

const applicationColumns = `a.id, a.job_offer_id, j.title, a.candidate_id, a.company_id, a.status, a.cover_letter, a.created_at`

func (p *Postgres) CreateApplication(ctx context.Context, app Application) (*Application, error) {
	job, err := p.GetJobOffer(ctx, app.JobOfferID)
	if err != nil {
		return nil, err
	}

	app.ID = newEntityID("app")
	app.CompanyID = job.CompanyID
	app.JobTitle = job.Title
	if app.Status == "" {
		app.Status = "pending"
	}
	row := p.DB.QueryRow(ctx, `
        INSERT INTO applications (id, job_offer_id, candidate_id, company_id, status, cover_letter)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at;`,
		app.ID, app.JobOfferID, app.CandidateID, app.CompanyID, app.Status, app.CoverLetter)
	if err := row.Scan(&app.CreatedAt); err != nil {
		return nil, err
	}
	return &app, nil
}

func (p *Postgres) listApplications(ctx context.Context, where string, arg string) ([]Application, error) {
	rows, err := p.DB.Query(ctx, `
        SELECT `+applicationColumns+`
        FROM applications a
        JOIN job_offers j ON j.id = a.job_offer_id
        WHERE `+where+` = $1
        ORDER BY a.created_at DESC;`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.JobOfferID, &app.JobTitle, &app.CandidateID,
			&app.CompanyID, &app.Status, &app.CoverLetter, &app.CreatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (p *Postgres) ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]Application, error) {
	return p.listApplications(ctx, "a.candidate_id", candidateID)
}

func (p *Postgres) ListApplicationsByCompany(ctx context.Context, companyID string) ([]Application, error) {
	return p.listApplications(ctx, "a.company_id", companyID)
}

func (p *Postgres) AddFavorite(ctx context.Context, candidateID, jobOfferID string) (*Favorite, error) {
	job, err := p.GetJobOffer(ctx, jobOfferID)
	if err != nil {
		return nil, err
	}

	fav := Favorite{
		ID:          newEntityID("fav"),
		CandidateID: candidateID,
		JobOfferID:  jobOfferID,
		JobTitle:    job.Title,
	}
	row := p.DB.QueryRow(ctx, `
        INSERT INTO favorites (id, candidate_id, job_offer_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (candidate_id, job_offer_id) DO UPDATE SET candidate_id = EXCLUDED.candidate_id
        RETURNING id, created_at;`, fav.ID, candidateID, jobOfferID)
	if err := row.Scan(&fav.ID, &fav.CreatedAt); err != nil {
		return nil, err
	}
	return &fav, nil
}

func (p *Postgres) RemoveFavorite(ctx context.Context, candidateID, jobOfferID string) error {
	tag, err := p.DB.Exec(ctx, `DELETE FROM favorites WHERE candidate_id = $1 AND job_offer_id = $2;`, candidateID, jobOfferID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("favorite for job offer %s: %w", jobOfferID, ErrNotFound)
	}
	return nil
}

func (p *Postgres) ListFavorites(ctx context.Context, candidateID string) ([]Favorite, error) {
	rows, err := p.DB.Query(ctx, `
        SELECT f.id, f.candidate_id, f.job_offer_id, j.title, f.created_at
        FROM favorites f
        JOIN job_offers j ON j.id = f.job_offer_id
        WHERE f.candidate_id = $1
        ORDER BY f.created_at DESC;`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favs []Favorite
	for rows.Next() {
		var fav Favorite
		if err := rows.Scan(&fav.ID, &fav.CandidateID, &fav.JobOfferID, &fav.JobTitle, &fav.CreatedAt); err != nil {
			return nil, err
		}
		favs = append(favs, fav)
	}
	return favs, rows.Err()
}

func (p *Postgres) GetCandidateProfile(ctx context.Context, candidateID string) (*CandidateProfile, error) {
	var prof CandidateProfile
	err := p.DB.QueryRow(ctx, `
        SELECT id, user_id, first_name, last_name, title, skills, experience, location, bio, created_at
        FROM candidate_profiles WHERE id = $1;`, candidateID).
		Scan(&prof.ID, &prof.UserID, &prof.FirstName, &prof.LastName, &prof.Title,
			&prof.Skills, &prof.Experience, &prof.Location, &prof.Bio, &prof.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func (p *Postgres) GetCompanyProfile(ctx context.Context, companyID string) (*CompanyProfile, error) {
	var prof CompanyProfile
	err := p.DB.QueryRow(ctx, `
        SELECT id, user_id, name, industry, location, description, created_at
        FROM company_profiles WHERE id = $1;`, companyID).
		Scan(&prof.ID, &prof.UserID, &prof.Name, &prof.Industry, &prof.Location, &prof.Description, &prof.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("company %s: %w", companyID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func (p *Postgres) CreateMessage(ctx context.Context, msg Message) (*Message, error) {
	msg.ID = newEntityID("msg")
	row := p.DB.QueryRow(ctx, `
        INSERT INTO messages (id, application_id, sender_id, content)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at;`, msg.ID, msg.ApplicationID, msg.SenderID, msg.Content)
	if err := row.Scan(&msg.CreatedAt); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (p *Postgres) ListMessagesByApplication(ctx context.Context, applicationID string) ([]Message, error) {
	rows, err := p.DB.Query(ctx, `
        SELECT id, application_id, sender_id, content, created_at
        FROM messages WHERE application_id = $1
        ORDER BY created_at ASC;`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.ApplicationID, &msg.SenderID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (p *Postgres) GetDecisionProfile(ctx context.Context, applicationID string) (*DecisionProfile, error) {
	var dp DecisionProfile
	err := p.DB.QueryRow(ctx, `
        SELECT id, application_id, candidate_id, strengths, weaknesses, motivation, recommendation, score, created_at
        FROM decision_profiles WHERE application_id = $1;`, applicationID).
		Scan(&dp.ID, &dp.ApplicationID, &dp.CandidateID, &dp.Strengths, &dp.Weaknesses,
			&dp.Motivation, &dp.Recommendation, &dp.Score, &dp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("decision profile for application %s: %w", applicationID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &dp, nil
}

func (p *Postgres) GetCandidateStats(ctx context.Context, candidateID string) (*CandidateStats, error) {
	stats := CandidateStats{CandidateID: candidateID}
	err := p.DB.QueryRow(ctx, `
        SELECT
            count(*),
            count(*) FILTER (WHERE status = 'pending'),
            count(*) FILTER (WHERE status = 'accepted'),
            count(*) FILTER (WHERE status = 'rejected')
        FROM applications WHERE candidate_id = $1;`, candidateID).
		Scan(&stats.TotalApplications, &stats.PendingApplications, &stats.AcceptedApplications, &stats.RejectedApplications)
	if err != nil {
		return nil, err
	}
	if err := p.DB.QueryRow(ctx, `SELECT count(*) FROM favorites WHERE candidate_id = $1;`, candidateID).
		Scan(&stats.FavoriteCount); err != nil {
		return nil, err
	}
	return &stats, nil
}
