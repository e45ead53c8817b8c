package store

import "time"

// SeedDemo loads a small fixture set into an in-memory facade. The server uses
// it when no database is configured so the assistant has data to talk about.
func SeedDemo(m *Memory) {
	now := time.Now().UTC()

	m.PutCompanyProfile(CompanyProfile{
		ID:          "comp-nova",
		UserID:      "user-nova",
		Name:        "Nova Systems",
		Industry:    "Software",
		Location:    "Paris",
		Description: "Cloud tooling for logistics companies.",
	})
	m.PutCompanyProfile(CompanyProfile{
		ID:          "comp-atlas",
		UserID:      "user-atlas",
		Name:        "Atlas Health",
		Industry:    "Healthcare",
		Location:    "Lyon",
		Description: "Patient data platform.",
	})

	m.PutCandidateProfile(CandidateProfile{
		ID:         "cand-demo",
		UserID:     "user-demo",
		FirstName:  "Ada",
		LastName:   "Moreau",
		Title:      "Backend Engineer",
		Skills:     []string{"Go", "PostgreSQL", "Docker"},
		Experience: "5 years building data services.",
		Location:   "Paris",
		Bio:        "Looking for a product-minded backend team.",
	})

	jobs := []JobOffer{
		{
			ID: "job-1", CompanyID: "comp-nova", CompanyName: "Nova Systems",
			Title: "Senior Go Developer", Location: "Paris", Category: "Engineering",
			ContractType: "full-time", SalaryMin: 60000, SalaryMax: 78000,
			Skills:      []string{"Go", "Kubernetes", "PostgreSQL"},
			Description: "Own the routing engine powering our logistics APIs.",
			CreatedAt:   now.Add(-48 * time.Hour),
		},
		{
			ID: "job-2", CompanyID: "comp-nova", CompanyName: "Nova Systems",
			Title: "Frontend Developer", Location: "Remote", Category: "Engineering",
			ContractType: "full-time", SalaryMin: 45000, SalaryMax: 60000,
			Skills:      []string{"TypeScript", "React"},
			Description: "Build the dispatcher dashboard used by fleet operators.",
			CreatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID: "job-3", CompanyID: "comp-atlas", CompanyName: "Atlas Health",
			Title: "Data Engineer", Location: "Lyon", Category: "Data",
			ContractType: "contract", SalaryMin: 50000, SalaryMax: 65000,
			Skills:      []string{"Python", "Airflow", "PostgreSQL"},
			Description: "Design ingestion pipelines for clinical records.",
			CreatedAt:   now.Add(-12 * time.Hour),
		},
	}
	for _, job := range jobs {
		m.PutJobOffer(job)
	}
}
