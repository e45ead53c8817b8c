// Package rag builds and searches the retrieval context injected into model
// prompts. Retrieval is lexical term matching over freshly indexed documents;
// nothing here is persisted.
package rag

import "time"

// DocType identifies what kind of entity a document was derived from.
type DocType string

const (
	DocJobOffer        DocType = "job_offer"
	DocUserProfile     DocType = "user_profile"
	DocApplication     DocType = "application"
	DocMessage         DocType = "message"
	DocFavorite        DocType = "favorite"
	DocDecisionProfile DocType = "decision_profile"
	DocCompany         DocType = "company"
)

// Document is one retrieval unit. Score is attached only during search and is
// not part of the document's identity.
type Document struct {
	ID        string         `json:"id"`
	Type      DocType        `json:"type"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
	Score     float64        `json:"score,omitempty"`
}
