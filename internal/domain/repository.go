package domain

import (
	"context"
	"math"
	"strings"
)

// Paging limits
const (
	DefaultPageSize = 10 // Page size used when none is requested
	MaxPageSize     = 50 // Hard upper bound on page size

	// MaxPageNumber keeps the row offset within int32 for every page size
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

// Sort orders accepted by List; both sort on id
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// FreelancerRepository owns all persistence of the freelancer aggregate.
// Lookups return ErrNotFound when nothing matches; Update, Archive, Unarchive
// and Delete report a missing id as false with a nil error.
type FreelancerRepository interface {
	GetByID(ctx context.Context, id uint) (*Freelancer, error)
	GetByUsername(ctx context.Context, username string) (*Freelancer, error)
	GetByEmail(ctx context.Context, email string) (*Freelancer, error)
	List(ctx context.Context, opts ListOptions) (*Page, error)
	Create(ctx context.Context, f *Freelancer) (uint, error)
	Update(ctx context.Context, f *Freelancer) (bool, error)
	Archive(ctx context.Context, id uint) (bool, error)
	Unarchive(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// ListOptions filters and pages a freelancer listing
type ListOptions struct {
	PageNumber   int    // 1-based page number
	PageSize     int    // Requested page size, clamped to MaxPageSize
	IsArchived   *bool  // nil means both archived and unarchived
	SearchPhrase string // Substring of username or email, empty means no restriction
	SortOrder    string // SortAsc or SortDesc
}

// Normalize fills defaults and clamps the page number and size
func (o ListOptions) Normalize() ListOptions {
	if o.PageNumber < 1 {
		o.PageNumber = 1
	}
	if o.PageNumber > MaxPageNumber {
		o.PageNumber = MaxPageNumber
	}
	if o.PageSize < 1 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
	o.SearchPhrase = strings.TrimSpace(o.SearchPhrase)
	if strings.EqualFold(o.SortOrder, SortDesc) {
		o.SortOrder = SortDesc
	} else {
		o.SortOrder = SortAsc
	}
	return o
}

// Offset is the number of rows skipped before the page
func (o ListOptions) Offset() int {
	return (o.PageNumber - 1) * o.PageSize
}

// Page is one page of a filtered freelancer listing
type Page struct {
	Items       []Freelancer `json:"items"`       // Freelancers on this page
	TotalCount  int64        `json:"totalCount"`  // Matches before paging
	PageNumber  int          `json:"pageNumber"`  // Current page
	PageSize    int          `json:"pageSize"`    // Effective page size
	TotalPages  int          `json:"totalPages"`  // ceil(TotalCount / PageSize)
	HasPrevious bool         `json:"hasPrevious"` // A page before this one exists
	HasNext     bool         `json:"hasNext"`     // A page after this one exists
}

// NewPage computes the paging metadata for items fetched with opts
func NewPage(items []Freelancer, total int64, opts ListOptions) *Page {
	totalPages := (int(total) + opts.PageSize - 1) / opts.PageSize // Round up
	if items == nil {
		items = []Freelancer{}
	}
	return &Page{
		Items:       items,
		TotalCount:  total,
		PageNumber:  opts.PageNumber,
		PageSize:    opts.PageSize,
		TotalPages:  totalPages,
		HasPrevious: opts.PageNumber > 1,
		HasNext:     opts.PageNumber < totalPages,
	}
}
