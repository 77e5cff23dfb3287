package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RiskProbability is the likelihood band of a risk materializing.
type RiskProbability string

// Possible risk probability values
const (
	RiskProbabilityLow    RiskProbability = "low"
	RiskProbabilityMedium RiskProbability = "medium"
	RiskProbabilityHigh   RiskProbability = "high"
)

// RiskImpact is the damage band if a risk materializes.
type RiskImpact string

// Possible risk impact values
const (
	RiskImpactLow    RiskImpact = "low"
	RiskImpactMedium RiskImpact = "medium"
	RiskImpactHigh   RiskImpact = "high"
)

// RiskStatus represents where a risk sits in its handling lifecycle.
type RiskStatus string

// Possible risk status values
const (
	RiskStatusIdentified RiskStatus = "identified"
	RiskStatusMitigating RiskStatus = "mitigating"
	RiskStatusResolved   RiskStatus = "resolved"
	RiskStatusAccepted   RiskStatus = "accepted"
)

// Risk-specific validation errors
var (
	ErrRiskIDEmpty            = errors.New("risk ID cannot be empty")
	ErrRiskProjectIDEmpty     = errors.New("risk project ID cannot be empty")
	ErrRiskTitleEmpty         = errors.New("risk title cannot be empty")
	ErrRiskProbabilityInvalid = errors.New("invalid risk probability")
	ErrRiskImpactInvalid      = errors.New("invalid risk impact")
	ErrRiskStatusInvalid      = errors.New("invalid risk status")
	ErrRiskCommentEmpty       = errors.New("risk comment cannot be empty")
)

// riskBand maps each probability/impact band to its numeric weight.
// Severity is the product, so low+low scores 1 and high+high scores 9.
var riskBand = map[string]int{
	"low":    1,
	"medium": 2,
	"high":   3,
}

// RiskComment is a dated note on a risk.
type RiskComment struct {
	AuthorID  uuid.UUID `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Risk represents a threat tracked against a project. ProjectID and
// ResponsibleID are plain references, not validated for existence here.
type Risk struct {
	ID            uuid.UUID       `json:"id"`
	ProjectID     uuid.UUID       `json:"project_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Probability   RiskProbability `json:"probability"`
	Impact        RiskImpact      `json:"impact"`
	ResponsibleID *uuid.UUID      `json:"responsible_id,omitempty"`
	Status        RiskStatus      `json:"status"`
	IsCore        bool            `json:"is_core"`
	Comments      []RiskComment   `json:"comments,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewRisk creates a new Risk in identified status with a fresh UUID and UTC
// timestamps. Returns an error if validation fails.
func NewRisk(
	projectID uuid.UUID,
	title string,
	category string,
	probability RiskProbability,
	impact RiskImpact,
) (*Risk, error) {
	now := time.Now().UTC()
	risk := &Risk{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       title,
		Category:    category,
		Probability: probability,
		Impact:      impact,
		Status:      RiskStatusIdentified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := risk.Validate(); err != nil {
		return nil, err
	}

	return risk, nil
}

// Validate checks if the Risk has valid data.
// Returns an error if any field fails validation.
func (r *Risk) Validate() error {
	if r.ID == uuid.Nil {
		return ErrRiskIDEmpty
	}

	if r.ProjectID == uuid.Nil {
		return ErrRiskProjectIDEmpty
	}

	if r.Title == "" {
		return ErrRiskTitleEmpty
	}

	if !isValidRiskProbability(r.Probability) {
		return ErrRiskProbabilityInvalid
	}

	if !isValidRiskImpact(r.Impact) {
		return ErrRiskImpactInvalid
	}

	if !isValidRiskStatus(r.Status) {
		return ErrRiskStatusInvalid
	}

	return nil
}

// Severity returns the numeric score derived from probability and impact.
// Bands multiply: low+low = 1, medium+medium = 4, high+high = 9. Both fields
// are validated at construction, so the lookup cannot miss.
func (r *Risk) Severity() int {
	return riskBand[string(r.Probability)] * riskBand[string(r.Impact)]
}

// Reassess replaces the probability and impact bands.
func (r *Risk) Reassess(probability RiskProbability, impact RiskImpact) error {
	if !isValidRiskProbability(probability) {
		return ErrRiskProbabilityInvalid
	}

	if !isValidRiskImpact(impact) {
		return ErrRiskImpactInvalid
	}

	r.Probability = probability
	r.Impact = impact
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// SetStatus moves the risk to the given handling status.
func (r *Risk) SetStatus(status RiskStatus) error {
	if !isValidRiskStatus(status) {
		return ErrRiskStatusInvalid
	}

	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// AssignResponsible sets who owns the risk response.
func (r *Risk) AssignResponsible(userID uuid.UUID) {
	r.ResponsibleID = &userID
	r.UpdatedAt = time.Now().UTC()
}

// AddComment appends a dated note authored by the given user.
func (r *Risk) AddComment(authorID uuid.UUID, text string) error {
	if text == "" {
		return ErrRiskCommentEmpty
	}

	r.Comments = append(r.Comments, RiskComment{
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// ParseRiskProbability validates a probability literal and returns the typed value.
func ParseRiskProbability(v string) (RiskProbability, error) {
	p := RiskProbability(v)
	if !isValidRiskProbability(p) {
		return "", ErrRiskProbabilityInvalid
	}
	return p, nil
}

// ParseRiskImpact validates an impact literal and returns the typed value.
func ParseRiskImpact(v string) (RiskImpact, error) {
	i := RiskImpact(v)
	if !isValidRiskImpact(i) {
		return "", ErrRiskImpactInvalid
	}
	return i, nil
}

// isValidRiskProbability checks if the given value is a valid RiskProbability.
func isValidRiskProbability(p RiskProbability) bool {
	switch p {
	case RiskProbabilityLow, RiskProbabilityMedium, RiskProbabilityHigh:
		return true
	default:
		return false
	}
}

// isValidRiskImpact checks if the given value is a valid RiskImpact.
func isValidRiskImpact(i RiskImpact) bool {
	switch i {
	case RiskImpactLow, RiskImpactMedium, RiskImpactHigh:
		return true
	default:
		return false
	}
}

// isValidRiskStatus checks if the given value is a valid RiskStatus.
func isValidRiskStatus(s RiskStatus) bool {
	switch s {
	case RiskStatusIdentified, RiskStatusMitigating, RiskStatusResolved, RiskStatusAccepted:
		return true
	default:
		return false
	}
}
