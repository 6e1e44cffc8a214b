package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-booking/internal/model"
	"github.com/Shivanand-hulikatti/event-booking/internal/notify"
	"github.com/Shivanand-hulikatti/event-booking/internal/repository"
	"github.com/jinzhu/copier"
)

// UserService is the user directory. Deleting a user leaves its bookings in
// place; they become orphans and drop out of every listing.
type UserService struct {
	*Core
}

func NewUserService(core *Core) *UserService {
	return &UserService{Core: core}
}

func normalizeUser(req *model.UserRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	var ve ValidationError
	if err := checkStruct(*req, &ve); err != nil {
		return err
	}
	return ve.err()
}

// ListUsers returns every user with the number of live bookings it holds.
func (s *UserService) ListUsers(ctx context.Context) ([]model.UserView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	counts := bookingCounts(snap)

	views := make([]model.UserView, 0, len(snap.users))
	for _, u := range snap.users {
		v, err := userView(u, counts[u.ID])
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// GetUser returns a single user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.UserView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	i := findUser(snap.users, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	v, err := userView(snap.users[i], bookingCounts(snap)[id])
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *UserService) CreateUser(ctx context.Context, req model.UserRequest) (*model.UserView, error) {
	if err := normalizeUser(&req); err != nil {
		return nil, err
	}

	var v model.UserView
	err := s.mutate(ctx, func(out *outbox) error {
		users, err := s.repo.Users(ctx)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		user := model.User{Name: req.Name, Email: req.Email, Password: req.Password}
		if user.ID, err = s.repo.NextID(ctx, repository.Users); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := s.repo.SaveUsers(ctx, append(users, user)); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		s.log.LogDomain("USER_CREATED", user.ID, user.Email)
		if v, err = userView(user, 0); err != nil {
			return err
		}
		s.enqueue(out, notify.UserCreated, user.ID, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateUser replaces the name, email and password of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req model.UserRequest) (*model.UserView, error) {
	if err := normalizeUser(&req); err != nil {
		return nil, err
	}

	var v model.UserView
	err := s.mutate(ctx, func(out *outbox) error {
		snap, err := s.loadAll(ctx)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		i := findUser(snap.users, id)
		if i < 0 {
			return repository.ErrNotFound
		}
		snap.users[i].Name = req.Name
		snap.users[i].Email = req.Email
		snap.users[i].Password = req.Password

		if err := s.repo.SaveUsers(ctx, snap.users); err != nil {
			return fmt.Errorf("update user: %w", err)
		}

		s.log.LogDomain("USER_UPDATED", id, req.Email)
		if v, err = userView(snap.users[i], bookingCounts(snap)[id]); err != nil {
			return err
		}
		s.enqueue(out, notify.UserUpdated, id, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteUser removes a user. Its bookings are not touched.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(out *outbox) error {
		users, err := s.repo.Users(ctx)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		i := findUser(users, id)
		if i < 0 {
			return repository.ErrNotFound
		}
		if err := s.repo.SaveUsers(ctx, append(users[:i], users[i+1:]...)); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		s.log.LogDomain("USER_DELETED", id, "bookings left in place")
		s.enqueue(out, notify.UserDeleted, id, nil)
		return nil
	})
}

func bookingCounts(snap *snapshot) map[int64]int {
	counts := make(map[int64]int)
	for _, b := range snap.liveBookings() {
		counts[b.UserID]++
	}
	return counts
}

func userView(u model.User, booked int) (model.UserView, error) {
	var v model.UserView
	if err := copier.Copy(&v, &u); err != nil {
		return v, fmt.Errorf("copy user %d: %w", u.ID, err)
	}
	v.EventsBooked = booked
	return v, nil
}
