package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"leave-service/internal/model"
	"leave-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// minReasonLength is the minimum number of characters a reason must have
const minReasonLength = 10

// CreateLeaveInput carries the caller-supplied fields for a new request.
// Dates are calendar dates; any time-of-day component is ignored.
type CreateLeaveInput struct {
	UserID    uint
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// LeaveService owns the leave request lifecycle: creation, listing with the
// owner snapshot attached, the pending → approved/rejected state machine,
// and the dashboard aggregation.
type LeaveService interface {
	Create(input CreateLeaveInput) (*model.LeaveRequest, error)
	List(userID *uint) ([]model.LeaveRequest, error)
	UpdateStatus(id uint, status, adminComment string) (*model.LeaveRequest, error)
	Stats() (model.LeaveStats, error)
}

type leaveService struct {
	leaveRepo repository.LeaveRepository
	userRepo  repository.UserRepository
	log       *zap.Logger
}

// NewLeaveService creates a leave service backed by the given repositories
func NewLeaveService(leaveRepo repository.LeaveRepository, userRepo repository.UserRepository, log *zap.Logger) LeaveService {
	return &leaveService{leaveRepo: leaveRepo, userRepo: userRepo, log: log}
}

// Create validates the input, computes the inclusive day count and appends a
// pending request to the store.
func (s *leaveService) Create(input CreateLeaveInput) (*model.LeaveRequest, error) {
	if !model.ValidLeaveType(input.LeaveType) {
		return nil, fmt.Errorf("%w: leave_type must be one of sick, vacation, personal, emergency", ErrValidation)
	}
	// Compare as calendar dates: a later time-of-day on the same end day is
	// still a valid single-day range.
	days := model.DaysRequested(input.StartDate, input.EndDate)
	if days < 1 {
		return nil, fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	}
	if len(strings.TrimSpace(input.Reason)) < minReasonLength {
		return nil, fmt.Errorf("%w: reason must be at least %d characters", ErrValidation, minReasonLength)
	}

	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d does not exist", ErrValidation, input.UserID)
		}
		return nil, err
	}

	request := &model.LeaveRequest{
		UserID:        input.UserID,
		LeaveType:     input.LeaveType,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		DaysRequested: days,
		Reason:        input.Reason,
		Status:        model.StatusPending,
	}
	if err := s.leaveRepo.Create(request); err != nil {
		return nil, err
	}

	// Attach the owner snapshot for the response; the stored row keeps only
	// the foreign key.
	request.User = user

	s.log.Info("Leave request created",
		zap.Uint("id", request.ID),
		zap.Uint("user_id", request.UserID),
		zap.String("leave_type", request.LeaveType),
		zap.Int("days_requested", request.DaysRequested))
	return request, nil
}

// List returns requests in creation order, each with its owner snapshot.
// A nil userID returns the whole collection.
func (s *leaveService) List(userID *uint) ([]model.LeaveRequest, error) {
	if userID != nil {
		return s.leaveRepo.ListByUser(*userID)
	}
	return s.leaveRepo.List()
}

// UpdateStatus moves a pending request to approved or rejected with an
// optional administrator comment. The update is a compare-and-set on the
// pending status, so concurrent decisions cannot both succeed.
func (s *leaveService) UpdateStatus(id uint, status, adminComment string) (*model.LeaveRequest, error) {
	if !model.ValidDecision(status) {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrValidation)
	}

	existing, err := s.leaveRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if existing.Status != model.StatusPending {
		return nil, ErrInvalidTransition
	}

	affected, err := s.leaveRepo.UpdateStatusIfPending(id, status, adminComment)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// A competing transition won between the read and the update
		return nil, ErrInvalidTransition
	}

	updated, err := s.leaveRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.log.Info("Leave request status updated",
		zap.Uint("id", updated.ID),
		zap.String("status", updated.Status),
		zap.Bool("has_comment", adminComment != ""))
	return updated, nil
}

// Stats aggregates the current request and employee collections
func (s *leaveService) Stats() (model.LeaveStats, error) {
	requests, err := s.leaveRepo.List()
	if err != nil {
		return model.LeaveStats{}, err
	}
	employees, err := s.userRepo.ListByRole(model.RoleEmployee)
	if err != nil {
		return model.LeaveStats{}, err
	}
	return ComputeStats(requests, employees), nil
}
