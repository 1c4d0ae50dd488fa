package inventory

import (
	"context"
	"errors"
	"fmt"

	"storage-bridge/core/validation"
	"storage-bridge/feature/inventory/models"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidLimit is returned when a limit mutation fails validation.
var ErrInvalidLimit = errors.New("invalid limit")

// LimitInput is the body of a limit update. Absent fields clear that bound.
type LimitInput struct {
	Min *int64 `json:"min" validate:"omitempty,gte=0"`
	Max *int64 `json:"max" validate:"omitempty,gte=0"`
}

// limitStructLevel rejects max <= min when both bounds are present.
func limitStructLevel(sl validator.StructLevel) {
	in := sl.Current().Interface().(LimitInput)
	if in.Min != nil && in.Max != nil && *in.Max <= *in.Min {
		sl.ReportError(in.Max, "max", "Max", "gtmin", "")
	}
}

func newLimitValidator() *validator.Validate {
	v := validation.New()
	v.RegisterStructValidation(limitStructLevel, LimitInput{})
	return v
}

// ValidateLimit checks a limit update without writing it.
func (s *Service) ValidateLimit(fingerprint string, in LimitInput) error {
	if fingerprint == "" {
		return fmt.Errorf("%w: fingerprint is required", ErrInvalidLimit)
	}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLimit, validation.Summary(err))
	}
	return nil
}

// UpdateLimits stores the rule for a fingerprint and forwards it to the storage system.
// When both bounds are absent the rule is deleted and nil is returned.
func (s *Service) UpdateLimits(ctx context.Context, fingerprint string, in LimitInput) (*models.ItemLimit, error) {
	if err := s.ValidateLimit(fingerprint, in); err != nil {
		return nil, err
	}

	if in.Min == nil && in.Max == nil {
		if err := s.ResetLimit(ctx, fingerprint); err != nil {
			return nil, err
		}
		return nil, nil
	}

	limit := &models.ItemLimit{Fingerprint: fingerprint, Min: in.Min, Max: in.Max}
	if err := s.store.SaveLimit(ctx, limit); err != nil {
		return nil, err
	}

	saved, err := s.store.GetLimit(ctx, fingerprint)
	if err != nil {
		return nil, err
	}

	s.dispatcher.SetLimit(fingerprint, saved.Min, saved.Max)
	return saved, nil
}

// ResetLimit deletes the rule for a fingerprint and tells the storage system to drop it.
func (s *Service) ResetLimit(ctx context.Context, fingerprint string) error {
	if fingerprint == "" {
		return fmt.Errorf("%w: fingerprint is required", ErrInvalidLimit)
	}
	if err := s.store.DeleteLimit(ctx, fingerprint); err != nil {
		return err
	}
	s.dispatcher.SetLimit(fingerprint, nil, nil)
	return nil
}
