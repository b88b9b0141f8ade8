package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scooter-rental-backend/internal/domain"
)

func TestAddScooterDefaultsToAvailable(t *testing.T) {
	repo := new(MockScooterRepo)
	svc := NewScooterService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Scooter) bool {
		return s.Status == domain.ScooterStatusAvailable
	})).Return(nil)

	err := svc.AddScooter(context.Background(), &domain.Scooter{Model: "M365", BatteryLevel: 80})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAddScooterValidation(t *testing.T) {
	repo := new(MockScooterRepo)
	svc := NewScooterService(repo)

	err := svc.AddScooter(context.Background(), &domain.Scooter{BatteryLevel: 80})
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	err = svc.AddScooter(context.Background(), &domain.Scooter{Model: "M365", BatteryLevel: 101})
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	repo.AssertNotCalled(t, "Create")
}

func TestSetStatusRejectsInUse(t *testing.T) {
	repo := new(MockScooterRepo)
	svc := NewScooterService(repo)

	_, err := svc.SetStatus(context.Background(), 1, domain.ScooterStatusInUse)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	_, err = svc.SetStatus(context.Background(), 1, domain.ScooterStatus("broken"))
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	repo.AssertNotCalled(t, "GetByID")
}

func TestSetStatusConflictsWhileRented(t *testing.T) {
	repo := new(MockScooterRepo)
	svc := NewScooterService(repo)

	repo.On("GetByID", mock.Anything, int32(7)).
		Return(&domain.Scooter{ID: 7, Status: domain.ScooterStatusInUse}, nil)

	_, err := svc.SetStatus(context.Background(), 7, domain.ScooterStatusMaintenance)
	assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))
	repo.AssertNotCalled(t, "Update")
}

func TestSetStatusUpdates(t *testing.T) {
	repo := new(MockScooterRepo)
	svc := NewScooterService(repo)

	repo.On("GetByID", mock.Anything, int32(7)).
		Return(&domain.Scooter{ID: 7, Status: domain.ScooterStatusAvailable}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Scooter) bool {
		return s.ID == 7 && s.Status == domain.ScooterStatusMaintenance
	})).Return(nil)

	sc, err := svc.SetStatus(context.Background(), 7, domain.ScooterStatusMaintenance)
	assert.NoError(t, err)
	assert.Equal(t, domain.ScooterStatusMaintenance, sc.Status)
	repo.AssertExpectations(t)
}

func TestRemoveScooterInUse(t *testing.T) {
	repo := new(MockScooterRepo)
	svc := NewScooterService(repo)

	repo.On("GetByID", mock.Anything, int32(3)).
		Return(&domain.Scooter{ID: 3, Status: domain.ScooterStatusInUse}, nil)

	err := svc.RemoveScooter(context.Background(), 3)
	assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))
	repo.AssertNotCalled(t, "Delete")
}

func TestRemoveScooterMissing(t *testing.T) {
	repo := new(MockScooterRepo)
	svc := NewScooterService(repo)

	repo.On("GetByID", mock.Anything, int32(9)).
		Return(nil, domain.NotFound("scooter 9 not found"))

	err := svc.RemoveScooter(context.Background(), 9)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}
