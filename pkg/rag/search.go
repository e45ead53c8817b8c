package rag

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

const (
	defaultSearchLimit = 5
	defaultRecentLimit = 10

	wordWeight     = 1.0
	titleWeight    = 2.0
	locationWeight = 1.5
	categoryWeight = 1.5
)

// Options narrow and bound a search. Metadata filters are conjunctive: every
// supplied key must match the document's metadata value exactly.
type Options struct {
	Limit    int
	Types    []DocType
	Metadata map[string]any
}

// Search ranks documents against a free-text query with a heuristic lexical
// score. Ties keep their original order; zero-score documents are dropped.
func Search(docs []Document, query string, opts Options) []Document {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var typeSet map[DocType]struct{}
	if len(opts.Types) > 0 {
		typeSet = make(map[DocType]struct{}, len(opts.Types))
		for _, t := range opts.Types {
			typeSet[t] = struct{}{}
		}
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(queryLower)

	var scored []Document
	for _, doc := range docs {
		if typeSet != nil {
			if _, ok := typeSet[doc.Type]; !ok {
				continue
			}
		}
		if !metadataMatches(doc.Metadata, opts.Metadata) {
			continue
		}

		score := scoreDocument(doc, queryLower, words)
		if score <= 0 {
			continue
		}
		doc.Score = score
		scored = append(scored, doc)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func scoreDocument(doc Document, queryLower string, words []string) float64 {
	content := strings.ToLower(doc.Content)

	var score float64
	for _, word := range words {
		if strings.Contains(content, word) {
			score += wordWeight
		}
	}
	if queryLower != "" {
		if metaContains(doc.Metadata, "title", queryLower) {
			score += titleWeight
		}
		if metaContains(doc.Metadata, "location", queryLower) {
			score += locationWeight
		}
		if metaContains(doc.Metadata, "category", queryLower) {
			score += categoryWeight
		}
	}
	return score
}

func metaContains(meta map[string]any, key, queryLower string) bool {
	val, ok := meta[key].(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(val), queryLower)
}

func metadataMatches(meta, filters map[string]any) bool {
	for key, want := range filters {
		got, ok := meta[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// SearchByType returns documents of one type ordered by recency, for browsing
// rather than relevance.
func SearchByType(docs []Document, t DocType, limit int) []Document {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	var out []Document
	for _, doc := range docs {
		if doc.Type == t {
			out = append(out, doc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FormatContext renders documents as a numbered block for prompt injection.
// An empty input produces an empty string so prompts carry no empty section.
func FormatContext(docs []Document) string {
	if len(docs) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Relevant context:\n")
	for i, doc := range docs {
		sb.WriteString(fmt.Sprintf("\n[%d] %s\n", i+1, doc.Type))
		sb.WriteString(doc.Content)
		sb.WriteString("\n")
		if len(doc.Metadata) > 0 {
			keys := make([]string, 0, len(doc.Metadata))
			for k := range doc.Metadata {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				sb.WriteString(fmt.Sprintf("  %s: %v\n", k, doc.Metadata[k]))
			}
		}
	}
	return sb.String()
}
