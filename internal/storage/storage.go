package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/eugenenazirov/pagination/internal/paginator"
)

// Upper bounds keep a single response small regardless of stored defaults.
const (
	MaxItemsPerPage  = 1000
	MaxSiblingsCount = 10
	MaxBoundaries    = 10
)

var (
	// ErrInvalidDefaults indicates the provided defaults violate validation rules.
	ErrInvalidDefaults = errors.New("defaults must have itemsPerPage in [1, 1000], siblingsCount and boundaries in [0, 10]")
)

// Defaults are the layout options applied when a request leaves them out.
type Defaults struct {
	ItemsPerPage  int `json:"itemsPerPage" yaml:"items_per_page"`
	SiblingsCount int `json:"siblingsCount" yaml:"siblings_count"`
	Boundaries    int `json:"boundaries" yaml:"boundaries"`
}

// Apply builds paginator options from request values, using d for nil layout
// fields. A nil currentPage or totalItems falls back to the paginator defaults.
func (d Defaults) Apply(currentPage, totalItems, itemsPerPage, siblingsCount, boundaries *int) paginator.Options {
	opts := paginator.Options{
		CurrentPage:   paginator.DefaultCurrentPage,
		TotalItems:    paginator.DefaultTotalItems,
		ItemsPerPage:  d.ItemsPerPage,
		SiblingsCount: d.SiblingsCount,
		Boundaries:    d.Boundaries,
	}
	setIfPresent(&opts.CurrentPage, currentPage)
	setIfPresent(&opts.TotalItems, totalItems)
	setIfPresent(&opts.ItemsPerPage, itemsPerPage)
	setIfPresent(&opts.SiblingsCount, siblingsCount)
	setIfPresent(&opts.Boundaries, boundaries)
	return opts
}

func setIfPresent(dst, src *int) {
	if src != nil {
		*dst = *src
	}
}

// Storage provides access to the defaults used by the paginate endpoints.
type Storage interface {
	GetDefaults() (Defaults, error)
	SetDefaults(d Defaults) error
}

// MemoryStorage keeps defaults in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu       sync.RWMutex
	defaults Defaults
}

// NewMemoryStorage initialises storage with the paginator defaults.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		defaults: DefaultDefaults(),
	}
}

// DefaultDefaults returns the paginator package defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		ItemsPerPage:  paginator.DefaultItemsPerPage,
		SiblingsCount: paginator.DefaultSiblingsCount,
		Boundaries:    paginator.DefaultBoundaries,
	}
}

// GetDefaults returns the currently configured defaults.
func (s *MemoryStorage) GetDefaults() (Defaults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.defaults, nil
}

// SetDefaults validates and stores the provided defaults.
func (s *MemoryStorage) SetDefaults(d Defaults) error {
	if err := Validate(d); err != nil {
		return err
	}

	s.mu.Lock()
	s.defaults = d
	s.mu.Unlock()

	return nil
}

// Validate reports ErrInvalidDefaults when d is out of range.
func Validate(d Defaults) error {
	if d.ItemsPerPage < 1 || d.ItemsPerPage > MaxItemsPerPage {
		return ErrInvalidDefaults
	}
	if d.SiblingsCount < 0 || d.SiblingsCount > MaxSiblingsCount {
		return ErrInvalidDefaults
	}
	if d.Boundaries < 0 || d.Boundaries > MaxBoundaries {
		return ErrInvalidDefaults
	}
	return nil
}

// CheckWindow rejects sibling or boundary counts above MaxSiblingsCount and
// MaxBoundaries. ItemsPerPage is left uncapped.
func CheckWindow(opts paginator.Options) error {
	if opts.SiblingsCount > MaxSiblingsCount {
		return &paginator.ArgumentError{
			Field:  paginator.FieldSiblingsCount,
			Value:  opts.SiblingsCount,
			Reason: fmt.Sprintf("must be at most %d", MaxSiblingsCount),
		}
	}
	if opts.Boundaries > MaxBoundaries {
		return &paginator.ArgumentError{
			Field:  paginator.FieldBoundaries,
			Value:  opts.Boundaries,
			Reason: fmt.Sprintf("must be at most %d", MaxBoundaries),
		}
	}
	return nil
}
