package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theuddeshya/Dynasty/internal/core/graph"
	"github.com/theuddeshya/Dynasty/internal/domain"
)

// ErrInvalidInput wraps every request validation failure
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New()

// GraphRequest is the validated form of a derived graph query
type GraphRequest struct {
	Search      string   `validate:"max=200"`
	Groups      []string `validate:"max=1000,dive,max=500"`
	Professions []string `validate:"max=1000,dive,max=500"`
}

// PositionPatch is one renderer-reported node position
type PositionPatch struct {
	NodeID string  `json:"node_id" validate:"required,max=64"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Pinned bool    `json:"pinned"`
}

type positionsRequest struct {
	Positions []PositionPatch `validate:"required,max=10000,dive"`
}

type importRequest struct {
	Format string `validate:"required,oneof=json yaml yml markdown md txt"`
}

func validateCriteria(c graph.Criteria) error {
	return check(&GraphRequest{Search: c.Search, Groups: c.Groups, Professions: c.Professions})
}

func validatePositions(patches []PositionPatch) error {
	return check(&positionsRequest{Positions: patches})
}

func validateFormat(format string) error {
	return check(&importRequest{Format: strings.ToLower(strings.TrimSpace(format))})
}

func check(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to user-friendly messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: field is required", e.Namespace()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: exceeds maximum of %s", e.Namespace(), e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s]", e.Namespace(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", e.Namespace(), e.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func (p PositionPatch) toDomain() domain.NodePosition {
	return domain.NodePosition{NodeID: p.NodeID, X: p.X, Y: p.Y, Pinned: p.Pinned}
}
