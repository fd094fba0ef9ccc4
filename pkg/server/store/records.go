package store

import (
	"errors"
	"math"
	"time"
)

// ErrRecordNotFound is returned when a record doesn't exist
var ErrRecordNotFound = errors.New("record not found")

// Kind identifies one of the content collections.
type Kind string

const (
	KindTraining    Kind = "training"
	KindMarketplace Kind = "marketplace"
	KindSchemes     Kind = "schemes"
	KindJobs        Kind = "jobs"
)

// Record is a single stored document of a resource kind. Resource-specific
// fields live in Attributes; the remaining fields are common to every kind.
type Record struct {
	ID            string
	Kind          Kind
	Language      string
	Attributes    map[string]interface{}
	CreatedBy     string
	CreatedByName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Document is the validated, normalized payload persisted for a record.
type Document struct {
	Language   string
	Attributes map[string]interface{}
}

// Filter is the predicate set applied to list and search queries. All parts
// are combined with AND semantics; zero values impose no constraint.
type Filter struct {
	// Kind restricts the query to one collection. Always set.
	Kind Kind

	// Language matches the language tag exactly.
	Language string

	// Equals holds attribute keys that must match exactly.
	Equals map[string]string

	// Contains holds attribute keys matched by case-insensitive substring.
	Contains map[string]string

	// Search, when set, requires the term to appear (case-insensitive) in at
	// least one of the listed attribute fields.
	Search *SearchFilter
}

// SearchFilter is a free-text predicate OR-ed across a fixed field set.
type SearchFilter struct {
	Term   string
	Fields []string
}

// PageRequest selects one page of a listing.
type PageRequest struct {
	Page  int
	Limit int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Normalize replaces out-of-range values with defaults and caps the limit.
// Page is clamped so that Offset never overflows into a negative value the
// database would reject.
func (p PageRequest) Normalize(limitMax int) PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if limitMax > 0 && p.Limit > limitMax {
		p.Limit = limitMax
	}
	if p.Page > math.MaxInt/p.Limit {
		p.Page = math.MaxInt / p.Limit
	}
	return p
}

// Offset returns the number of records to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageInfo is the pagination metadata returned alongside every page.
type PageInfo struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// NewPageInfo computes pagination metadata for a total count of matching
// records, independent of the requested page.
func NewPageInfo(p PageRequest, total int) PageInfo {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}

// RecordsStore abstracts content record storage operations
type RecordsStore interface {
	// ListRecords returns one page of records matching the filter, newest
	// first, together with the total count of matching records.
	ListRecords(filter Filter, page PageRequest) ([]Record, int, error)

	// FetchRecord retrieves a single record by kind and id.
	// Returns ErrRecordNotFound if the id does not resolve.
	FetchRecord(kind Kind, id string) (*Record, error)

	// CreateRecord persists a new record owned by ownerID and returns it
	// enriched with the owner's display name.
	CreateRecord(kind Kind, ownerID string, doc Document) (*Record, error)

	// UpdateRecord replaces the validated fields of an existing record.
	// Returns ErrRecordNotFound if the id does not resolve.
	UpdateRecord(kind Kind, id string, doc Document) (*Record, error)

	// DeleteRecord permanently removes a record.
	// Returns ErrRecordNotFound if the id does not resolve.
	DeleteRecord(kind Kind, id string) error
}
