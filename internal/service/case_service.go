package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/events"
	"github.com/dulagbps/records-service/internal/repository"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// CaseService owns barangay case records.
type CaseService struct {
	cases      repository.CaseRepository
	dispatcher events.Dispatcher
}

// CaseUpdate carries the optional fields accepted on update.
type CaseUpdate struct {
	CaseName        *string
	CaseType        *domain.CaseType
	CaseStatus      *domain.CaseStatus
	ComplainantName *string
	DateFiled       *time.Time
}

// NewCaseService builds the service.
func NewCaseService(cases repository.CaseRepository, dispatcher events.Dispatcher) *CaseService {
	return &CaseService{cases: cases, dispatcher: dispatcher}
}

// Create files a new case and records the activity.
func (s *CaseService) Create(ctx context.Context, c *domain.Case, actorStaffID string) (*domain.Case, error) {
	if c.CaseID == "" || c.CaseName == "" || c.ComplainantName == "" || c.DateFiled.IsZero() {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}
	if !domain.ValidCaseType(c.CaseType) {
		return nil, apperrors.NewValidationError("invalid case type", nil)
	}
	if !domain.ValidCaseStatus(c.CaseStatus) {
		return nil, apperrors.NewValidationError("invalid case status", nil)
	}

	if _, err := s.cases.FindByCaseID(ctx, c.CaseID); err == nil {
		return nil, apperrors.NewDuplicateKey("caseId")
	}

	if err := s.cases.Create(ctx, c); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventCaseCreated, c.CaseID, c.CaseName, actorStaffID)
	return c, nil
}

// Update applies a partial case update.
func (s *CaseService) Update(ctx context.Context, caseID string, in CaseUpdate, actorStaffID string) (*domain.Case, error) {
	c, err := s.cases.FindByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if in.CaseName != nil {
		c.CaseName = *in.CaseName
	}
	if in.CaseType != nil {
		if !domain.ValidCaseType(*in.CaseType) {
			return nil, apperrors.NewValidationError("invalid case type", nil)
		}
		c.CaseType = *in.CaseType
	}
	if in.CaseStatus != nil {
		if !domain.ValidCaseStatus(*in.CaseStatus) {
			return nil, apperrors.NewValidationError("invalid case status", nil)
		}
		c.CaseStatus = *in.CaseStatus
	}
	if in.ComplainantName != nil {
		c.ComplainantName = *in.ComplainantName
	}
	if in.DateFiled != nil {
		c.DateFiled = *in.DateFiled
	}

	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventCaseUpdated, c.CaseID, c.CaseName, actorStaffID)
	return c, nil
}

// Delete removes a case.
func (s *CaseService) Delete(ctx context.Context, caseID string) error {
	return s.cases.Delete(ctx, caseID)
}

// Get returns one case.
func (s *CaseService) Get(ctx context.Context, caseID string) (*domain.Case, error) {
	return s.cases.FindByCaseID(ctx, caseID)
}

// List returns all cases, most recently filed first.
func (s *CaseService) List(ctx context.Context) ([]domain.Case, error) {
	return s.cases.List(ctx)
}

func (s *CaseService) publish(ctx context.Context, eventType events.EventType, subjectID, subjectName, actorStaffID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		SubjectID:    subjectID,
		SubjectName:  subjectName,
		ActorStaffID: actorStaffID,
		Timestamp:    time.Now(),
	})
}
