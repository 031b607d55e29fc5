package filter

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrLockedFilter is returned when a destroy is attempted on a locked
// (system-provided) filter. The filter is left intact.
var ErrLockedFilter = errors.New("provided filters can not be deleted")

type FilterService interface {
	CreateFilter(ctx context.Context, filter *Filter) error
	GetFilter(ctx context.Context, id string) (*Filter, error)
	ListFilters(ctx context.Context) ([]Filter, error)
	UpdateFilter(ctx context.Context, id string, name, description string) (*Filter, error)
	DeleteFilter(ctx context.Context, id string) error
}

type FilterServiceImpl struct {
	FilterRepo FilterRepository
	Logger     *zap.Logger
}

func NewFilterService(filterRepo FilterRepository, logger *zap.Logger) FilterService {
	return &FilterServiceImpl{
		FilterRepo: filterRepo,
		Logger:     logger,
	}
}

func (s *FilterServiceImpl) CreateFilter(ctx context.Context, filter *Filter) error {
	if violations := filter.Validate(); len(violations) > 0 {
		return &InvalidCriteriaError{Violations: violations}
	}
	return s.FilterRepo.Create(ctx, filter)
}

func (s *FilterServiceImpl) GetFilter(ctx context.Context, id string) (*Filter, error) {
	return s.FilterRepo.Get(ctx, id)
}

func (s *FilterServiceImpl) ListFilters(ctx context.Context) ([]Filter, error) {
	return s.FilterRepo.List(ctx)
}

// UpdateFilter changes name and description only; newlines are stripped from
// the description before it is stored.
func (s *FilterServiceImpl) UpdateFilter(ctx context.Context, id string, name, description string) (*Filter, error) {
	description = strings.ReplaceAll(description, "\n", "")

	if msg := checkNameFormat(name); name != "" && msg != "" {
		return nil, &InvalidCriteriaError{Violations: []Violation{{Kind: ViolationBadName, Message: msg}}}
	}
	if msg := checkDescriptionFormat(description); msg != "" {
		return nil, &InvalidCriteriaError{Violations: []Violation{{Kind: ViolationBadDescription, Message: msg}}}
	}

	return s.FilterRepo.UpdateNameDescription(ctx, id, name, description)
}

func (s *FilterServiceImpl) DeleteFilter(ctx context.Context, id string) error {
	filter, err := s.FilterRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if filter.Locked {
		s.Logger.Error("attempted to delete a locked filter",
			zap.String("filter_id", id),
			zap.String("name", filter.Name))
		return ErrLockedFilter
	}

	return s.FilterRepo.Delete(ctx, id)
}
