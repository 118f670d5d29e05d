// Package orm holds the pagination and sorting primitives shared by
// repositories: a Pageable request, a Page response envelope and a GORM
// scope that applies them.
package orm

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps "desc" (any case) to Desc and anything else to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Sort orders results by one property.
type Sort struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction"`
}

// Pageable requests a zero-based page of Size rows.
type Pageable struct {
	Page int
	Size int
	Sort Sort
}

// PageableError reports which pagination input was rejected.
type PageableError struct {
	Field   string
	Message string
}

func (e *PageableError) Error() string { return fmt.Sprintf("orm: %s: %s", e.Field, e.Message) }

// NewPageable validates the request against the sortable properties.
// Sizes above MaxPageSize are capped.
func NewPageable(page, size int, sort Sort, sortable map[string]string) (Pageable, error) {
	if page < 0 {
		return Pageable{}, &PageableError{Field: "page", Message: "must not be negative"}
	}
	if size < 1 {
		return Pageable{}, &PageableError{Field: "size", Message: "must be at least 1"}
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if _, ok := sortable[sort.Property]; !ok {
		return Pageable{}, &PageableError{
			Field:   "sortBy",
			Message: fmt.Sprintf("unknown property %q", sort.Property),
		}
	}
	if sort.Direction != Desc {
		sort.Direction = Asc
	}
	return Pageable{Page: page, Size: size, Sort: sort}, nil
}

func (p Pageable) Offset() int { return p.Page * p.Size }

// Page is the response envelope for a Pageable query.
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Size             int   `json:"size"`
	Number           int   `json:"number"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
	Sort             Sort  `json:"sort"`
}

// NewPage builds the envelope for content fetched with p out of total rows.
func NewPage[T any](content []T, p Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if p.Size > 0 {
		totalPages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Size:             p.Size,
		Number:           p.Page,
		NumberOfElements: len(content),
		First:            p.Page == 0,
		Last:             p.Page+1 >= totalPages,
		Empty:            len(content) == 0,
		Sort:             p.Sort,
	}
}

// Paginate orders by the mapped column of p.Sort, breaks ties on the
// primary key, and slices by offset/limit. sortable maps properties to
// column names; NewPageable has already rejected unknown properties.
func Paginate(p Pageable, sortable map[string]string, primaryKey string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column := sortable[p.Sort.Property]
		if column == "" {
			column = primaryKey
		}
		desc := p.Sort.Direction == Desc

		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
		if column != primaryKey {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: primaryKey}, Desc: desc})
		}
		return db.Offset(p.Offset()).Limit(p.Size)
	}
}
