package service

import (
	"time"

	"leave-service/internal/model"

	"gorm.io/gorm"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(role string) ([]model.User, error) {
	var result []model.User
	for id := uint(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok && u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	requests []*model.LeaveRequest
	users    *mockUserRepo
	nextID   uint
}

func newMockLeaveRepo(users *mockUserRepo) *mockLeaveRepo {
	return &mockLeaveRepo{users: users, nextID: 1}
}

func (m *mockLeaveRepo) Create(request *model.LeaveRequest) error {
	request.ID = m.nextID
	m.nextID++
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	stored := *request
	stored.User = nil
	m.requests = append(m.requests, &stored)
	return nil
}

// withOwner mimics the repository's Preload: a fresh owner snapshot per read
func (m *mockLeaveRepo) withOwner(request *model.LeaveRequest) model.LeaveRequest {
	copied := *request
	if owner, err := m.users.GetByID(request.UserID); err == nil {
		copied.User = owner
	}
	return copied
}

func (m *mockLeaveRepo) GetByID(id uint) (*model.LeaveRequest, error) {
	for _, r := range m.requests {
		if r.ID == id {
			joined := m.withOwner(r)
			return &joined, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) List() ([]model.LeaveRequest, error) {
	result := make([]model.LeaveRequest, 0, len(m.requests))
	for _, r := range m.requests {
		result = append(result, m.withOwner(r))
	}
	return result, nil
}

func (m *mockLeaveRepo) ListByUser(userID uint) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, r := range m.requests {
		if r.UserID == userID {
			result = append(result, m.withOwner(r))
		}
	}
	return result, nil
}

func (m *mockLeaveRepo) UpdateStatusIfPending(id uint, status, adminComment string) (int64, error) {
	for _, r := range m.requests {
		if r.ID == id && r.Status == model.StatusPending {
			r.Status = status
			r.AdminComment = adminComment
			r.UpdatedAt = time.Now()
			return 1, nil
		}
	}
	return 0, nil
}
