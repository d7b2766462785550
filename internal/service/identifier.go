package service

import (
	"context"
	"fmt"

	"ridebook/internal/observability"
	"ridebook/internal/repository"
)

// IdentifierKind names a family of sequential identifiers.
type IdentifierKind string

const (
	IdentifierAdmin    IdentifierKind = "admin"
	IdentifierDriver   IdentifierKind = "driver"
	IdentifierOperator IdentifierKind = "operator"
)

type identifierScheme struct {
	counter string
	prefix  string
}

var identifierSchemes = map[IdentifierKind]identifierScheme{
	IdentifierAdmin:    {counter: "adminId", prefix: "AD"},
	IdentifierDriver:   {counter: "driverId", prefix: "DR"},
	IdentifierOperator: {counter: "operatorId", prefix: "OP"},
}

// IdentifierService mints human-readable sequential identifiers such as AD001.
type IdentifierService struct {
	counters repository.CounterRepository
}

// NewIdentifierService creates a new IdentifierService.
func NewIdentifierService(counters repository.CounterRepository) *IdentifierService {
	return &IdentifierService{counters: counters}
}

// Generate increments the counter for kind and formats the result with its prefix.
// Numbers are zero-padded to three digits and keep growing past 999.
func (s *IdentifierService) Generate(ctx context.Context, kind IdentifierKind) (string, error) {
	scheme, ok := identifierSchemes[kind]
	if !ok {
		return "", ErrUnknownIdentifierKind
	}

	n, err := s.counters.Next(ctx, scheme.counter)
	if err != nil {
		return "", fmt.Errorf("failed to increment %s counter: %w", scheme.counter, err)
	}

	observability.IdentifiersIssuedTotal.WithLabelValues(scheme.prefix).Inc()
	return FormatIdentifier(scheme.prefix, n), nil
}

// GenerateAdminID mints the next AD### identifier.
func (s *IdentifierService) GenerateAdminID(ctx context.Context) (string, error) {
	return s.Generate(ctx, IdentifierAdmin)
}

// FormatIdentifier renders prefix followed by n padded to at least three digits.
func FormatIdentifier(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}
