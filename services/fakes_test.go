package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
)

var (
	admin  = &models.User{ID: 1, Username: "admin", Email: "admin@ceylon.lk", Role: models.RoleAdmin}
	member = &models.User{ID: 7, Username: "nimal", Email: "nimal@example.com", Role: models.RoleUser}
)

// fakeSubmissions keeps requests in memory and records what gets published.
type fakeSubmissions[R any, P any] struct {
	mu         sync.Mutex
	items      map[uint]*R
	published  []*P
	publishErr error
}

func newFakeSubmissions[R any, P any](items map[uint]*R) *fakeSubmissions[R, P] {
	if items == nil {
		items = map[uint]*R{}
	}
	return &fakeSubmissions[R, P]{items: items}
}

func (f *fakeSubmissions[R, P]) FindByID(_ context.Context, id uint) (*R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return item, nil
}

func (f *fakeSubmissions[R, P]) Publish(_ context.Context, id uint, item *P) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	if _, ok := f.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.items, id)
	f.published = append(f.published, item)
	return nil
}

func (f *fakeSubmissions[R, P]) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeNotifications struct {
	mu      sync.Mutex
	created []*models.Notification
	err     error
	nextID  uint
}

func (f *fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	n.ID = f.nextID
	f.created = append(f.created, n)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []Email
	err  error
}

func (f *fakeMailer) Send(_ context.Context, email Email) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, email)
	return "<msg-1@ceylon.lk>", nil
}

type fakePusher struct {
	pushed []uint
}

func (f *fakePusher) PushNotification(userID uint, _ *models.Notification) {
	f.pushed = append(f.pushed, userID)
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
	err    error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[uint]*models.User{}, nextID: 100}
	for _, u := range users {
		cp := *u
		f.users[u.ID] = &cp
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == identifier {
			return u, nil
		}
	}
	return f.FindByEmail(ctx, identifier)
}

func (f *fakeUserRepo) FindByResetToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	for _, u := range f.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now) {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) Save(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.users, id)
	return nil
}
