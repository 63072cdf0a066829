// Package referencedata validates codes (restriction types, domestic status
// values) against the service's reference code groups before any write.
package referencedata

import (
	"context"
	"log/slog"

	dErrors "contact-registry/pkg/domain-errors"
)

// Group names a reference code group.
type Group string

const (
	GroupDomesticStatus  Group = "DOMESTIC_STS"
	GroupRestrictionType Group = "RESTRICTION"
)

// Store looks up reference codes. Implementations must treat an unknown group
// the same as an unknown code: exists = false.
type Store interface {
	Exists(ctx context.Context, group Group, code string) (bool, error)
}

// Service answers existence checks and converts "missing" into the domain
// error callers propagate.
type Service struct {
	store  Store
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "reference data store is required")
	}
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Exists reports whether code is a live member of group.
func (s *Service) Exists(ctx context.Context, group Group, code string) (bool, error) {
	ok, err := s.store.Exists(ctx, group, code)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "reference data lookup failed")
	}
	return ok, nil
}

// Verify returns a not-found error when code is absent from group. Callers
// use it to reject writes before any row is persisted.
func (s *Service) Verify(ctx context.Context, group Group, code string) error {
	ok, err := s.Exists(ctx, group, code)
	if err != nil {
		return err
	}
	if !ok {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "unknown reference code", "group", group, "code", code)
		}
		return dErrors.Newf(dErrors.CodeNotFound, "no %q reference code matching %q", group, code)
	}
	return nil
}
