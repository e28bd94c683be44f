package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinSuggestionNameLength   = 3
	MinSuggestionReasonLength = 10
)

type SuggestionType string

const (
	SuggestionPrimary     SuggestionType = "primary"
	SuggestionSubcategory SuggestionType = "subcategory"
)

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
)

// CategorySuggestion is an entry in the taxonomy moderation queue
type CategorySuggestion struct {
	ID             string           `json:"id,omitempty"`
	SuggestionType SuggestionType   `json:"suggestion_type"`
	Name           string           `json:"name"`
	ParentCategory string           `json:"parent_category,omitempty"`
	Reason         string           `json:"reason"`
	Status         SuggestionStatus `json:"status,omitempty"`
	AdminNotes     string           `json:"admin_notes,omitempty"`
	SubmittedBy    string           `json:"submitted_by,omitempty"`
	CreatedAt      string           `json:"created_at,omitempty"`
}

// SuggestionInput is what a user proposes
type SuggestionInput struct {
	SuggestionType SuggestionType
	Name           string
	ParentCategory string
	Reason         string
}

// Validate enforces the length rules and type/parent consistency.
// CanSubmit uses the same checks so the two never disagree.
func (in SuggestionInput) Validate() ValidationErrors {
	errs := ValidationErrors{}
	switch in.SuggestionType {
	case SuggestionPrimary:
	case SuggestionSubcategory:
		if strings.TrimSpace(in.ParentCategory) == "" {
			errs["parent_category"] = "choose the primary category this subcategory belongs to"
		}
	default:
		errs["suggestion_type"] = "suggestion type must be primary or subcategory"
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < MinSuggestionNameLength {
		errs["name"] = fmt.Sprintf("name must be at least %d characters", MinSuggestionNameLength)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Reason)) < MinSuggestionReasonLength {
		errs["reason"] = fmt.Sprintf("reason must be at least %d characters", MinSuggestionReasonLength)
	}
	return errs
}

// CanSubmit reports whether the submit action should be enabled
func (in SuggestionInput) CanSubmit() bool {
	return in.Validate().Empty()
}

// ToSuggestion builds the request payload with trimmed fields
func (in SuggestionInput) ToSuggestion() CategorySuggestion {
	s := CategorySuggestion{
		SuggestionType: in.SuggestionType,
		Name:           strings.TrimSpace(in.Name),
		Reason:         strings.TrimSpace(in.Reason),
	}
	if in.SuggestionType == SuggestionSubcategory {
		s.ParentCategory = strings.TrimSpace(in.ParentCategory)
	}
	return s
}

// ParseSuggestionStatus validates a moderation target status
func ParseSuggestionStatus(s string) (SuggestionStatus, error) {
	switch SuggestionStatus(strings.ToLower(strings.TrimSpace(s))) {
	case SuggestionPending:
		return SuggestionPending, nil
	case SuggestionApproved:
		return SuggestionApproved, nil
	case SuggestionRejected:
		return SuggestionRejected, nil
	}
	return "", fmt.Errorf("unknown suggestion status %q", s)
}
