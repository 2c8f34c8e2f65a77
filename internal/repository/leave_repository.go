package repository

import (
	"time"

	"leave-service/internal/model"
	"leave-service/prometheus"

	"gorm.io/gorm"
)

// LeaveRepository provides access to the leave request collection
type LeaveRepository interface {
	Create(request *model.LeaveRequest) error
	GetByID(id uint) (*model.LeaveRequest, error)
	List() ([]model.LeaveRequest, error)
	ListByUser(userID uint) ([]model.LeaveRequest, error)
	// UpdateStatusIfPending atomically moves the request out of pending.
	// Returns the number of rows affected; zero means the request was not
	// pending at update time.
	UpdateStatusIfPending(id uint, status, adminComment string) (int64, error)
}

type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a GORM-backed leave request repository
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(request *model.LeaveRequest) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.Create(request).Error
}

func (r *leaveRepository) GetByID(id uint) (*model.LeaveRequest, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var request model.LeaveRequest
	if err := r.db.Preload("User").First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *leaveRepository) List() ([]model.LeaveRequest, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var requests []model.LeaveRequest
	// Insertion order: ids are assigned sequentially at creation
	if err := r.db.Preload("User").Order("id asc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *leaveRepository) ListByUser(userID uint) ([]model.LeaveRequest, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var requests []model.LeaveRequest
	if err := r.db.Preload("User").Where("user_id = ?", userID).Order("id asc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *leaveRepository) UpdateStatusIfPending(id uint, status, adminComment string) (int64, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())
	// Compare-and-set on (id, status=pending): two concurrent transitions
	// can never both see rows affected.
	result := r.db.Model(&model.LeaveRequest{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":        status,
			"admin_comment": adminComment,
			"updated_at":    time.Now(),
		})
	return result.RowsAffected, result.Error
}
