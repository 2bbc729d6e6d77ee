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

// ResidentService owns resident records and the derived statistics.
type ResidentService struct {
	residents  repository.ResidentRepository
	dispatcher events.Dispatcher
}

// ResidentUpdate carries the optional fields accepted on update.
type ResidentUpdate struct {
	FullName      *string
	Birthdate     *time.Time
	Gender        *domain.Gender
	ContactNumber *string
	Address       *string
	MaritalStatus *domain.MaritalStatus
	Occupation    *string
}

// ResidentStatistics aggregates the dashboard demographics view.
type ResidentStatistics struct {
	TotalResidents            int            `json:"totalResidents"`
	AgeDistribution           AgeBuckets     `json:"ageDistribution"`
	GenderDistribution        map[string]int `json:"genderDistribution"`
	MaritalStatusDistribution map[string]int `json:"maritalStatusDistribution"`
	OccupationDistribution    map[string]int `json:"occupationDistribution"`
}

// AgeBuckets groups residents into the dashboard's age bands.
type AgeBuckets struct {
	Children int `json:"children"` // 0-12
	Youth    int `json:"youth"`    // 13-17
	Adults   int `json:"adults"`   // 18-59
	Seniors  int `json:"seniors"`  // 60+
}

// NewResidentService builds the service.
func NewResidentService(residents repository.ResidentRepository, dispatcher events.Dispatcher) *ResidentService {
	return &ResidentService{residents: residents, dispatcher: dispatcher}
}

// Create registers a resident and records the activity.
func (s *ResidentService) Create(ctx context.Context, resident *domain.Resident, actorStaffID string) (*domain.Resident, error) {
	if resident.ResidentID == "" || resident.FullName == "" || resident.Birthdate.IsZero() ||
		resident.ContactNumber == "" || resident.Address == "" || resident.Occupation == "" {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}
	if !domain.ValidGender(resident.Gender) {
		return nil, apperrors.NewValidationError("invalid gender", nil)
	}
	if !domain.ValidMaritalStatus(resident.MaritalStatus) {
		return nil, apperrors.NewValidationError("invalid marital status", nil)
	}

	if _, err := s.residents.FindByResidentID(ctx, resident.ResidentID); err == nil {
		return nil, apperrors.NewDuplicateKey("residentId")
	}

	if err := s.residents.Create(ctx, resident); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventResidentCreated, resident.ResidentID, resident.FullName, actorStaffID)
	return resident, nil
}

// Update applies a partial resident update.
func (s *ResidentService) Update(ctx context.Context, residentID string, in ResidentUpdate, actorStaffID string) (*domain.Resident, error) {
	resident, err := s.residents.FindByResidentID(ctx, residentID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		resident.FullName = *in.FullName
	}
	if in.Birthdate != nil {
		resident.Birthdate = *in.Birthdate
	}
	if in.Gender != nil {
		if !domain.ValidGender(*in.Gender) {
			return nil, apperrors.NewValidationError("invalid gender", nil)
		}
		resident.Gender = *in.Gender
	}
	if in.ContactNumber != nil {
		resident.ContactNumber = *in.ContactNumber
	}
	if in.Address != nil {
		resident.Address = *in.Address
	}
	if in.MaritalStatus != nil {
		if !domain.ValidMaritalStatus(*in.MaritalStatus) {
			return nil, apperrors.NewValidationError("invalid marital status", nil)
		}
		resident.MaritalStatus = *in.MaritalStatus
	}
	if in.Occupation != nil {
		resident.Occupation = *in.Occupation
	}

	if err := s.residents.Update(ctx, resident); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventResidentUpdated, resident.ResidentID, resident.FullName, actorStaffID)
	return resident, nil
}

// Delete removes a resident and records the activity.
func (s *ResidentService) Delete(ctx context.Context, residentID, actorStaffID string) error {
	deleted, err := s.residents.Delete(ctx, residentID)
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventResidentDeleted, deleted.ResidentID, deleted.FullName, actorStaffID)
	return nil
}

// Get returns one resident.
func (s *ResidentService) Get(ctx context.Context, residentID string) (*domain.Resident, error) {
	return s.residents.FindByResidentID(ctx, residentID)
}

// List returns all residents ordered by resident id.
func (s *ResidentService) List(ctx context.Context) ([]domain.Resident, error) {
	return s.residents.List(ctx)
}

// Statistics computes the demographic aggregates for the dashboard.
func (s *ResidentService) Statistics(ctx context.Context) (*ResidentStatistics, error) {
	total, err := s.residents.Count(ctx)
	if err != nil {
		return nil, err
	}
	gender, err := s.residents.CountGroupedBy(ctx, repository.GroupByGender)
	if err != nil {
		return nil, err
	}
	marital, err := s.residents.CountGroupedBy(ctx, repository.GroupByMaritalStatus)
	if err != nil {
		return nil, err
	}
	occupation, err := s.residents.CountGroupedBy(ctx, repository.GroupByOccupation)
	if err != nil {
		return nil, err
	}

	residents, err := s.residents.BirthdateList(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var ages AgeBuckets
	for i := range residents {
		switch age := residents[i].Age(now); {
		case age >= 0 && age <= 12:
			ages.Children++
		case age >= 13 && age <= 17:
			ages.Youth++
		case age >= 18 && age <= 59:
			ages.Adults++
		case age >= 60:
			ages.Seniors++
		}
	}

	return &ResidentStatistics{
		TotalResidents:            total,
		AgeDistribution:           ages,
		GenderDistribution:        gender,
		MaritalStatusDistribution: marital,
		OccupationDistribution:    occupation,
	}, nil
}

func (s *ResidentService) publish(ctx context.Context, eventType events.EventType, subjectID, subjectName, actorStaffID string) {
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
