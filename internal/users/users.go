package users

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adibhanna/focusup/internal/clock"
	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/storage"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrEmptyName = errors.New("name is required")
	ErrNoCurrent = errors.New("no current user")
)

// Registry keeps the local profiles and which one is active.
type Registry struct {
	kv    storage.KV
	clock clock.Clock
}

func NewRegistry(kv storage.KV, clk clock.Clock) *Registry {
	return &Registry{kv: kv, clock: clk}
}

func (r *Registry) List() []models.User {
	return storage.Load(r.kv, storage.UsersKey, []models.User{})
}

func (r *Registry) Get(id string) (models.User, error) {
	for _, u := range r.List() {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Register adds a profile that joins now and makes it current.
func (r *Registry) Register(name string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, ErrEmptyName
	}
	u := models.User{
		ID:       uuid.NewString(),
		Name:     name,
		JoinDate: r.clock.Now(),
	}
	if err := r.Add(u); err != nil {
		return models.User{}, err
	}
	if err := r.SetCurrent(u.ID); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Add stores a fully formed profile, replacing one with the same id.
func (r *Registry) Add(u models.User) error {
	list := r.List()
	replaced := false
	for i := range list {
		if list[i].ID == u.ID {
			list[i] = u
			replaced = true
		}
	}
	if !replaced {
		list = append(list, u)
	}
	return storage.Save(r.kv, storage.UsersKey, list)
}

func (r *Registry) SetCurrent(id string) error {
	if _, err := r.Get(id); err != nil {
		return err
	}
	return storage.Save(r.kv, storage.CurrentUserKey, id)
}

func (r *Registry) Current() (models.User, error) {
	id := storage.Load(r.kv, storage.CurrentUserKey, "")
	if id == "" {
		return models.User{}, ErrNoCurrent
	}
	return r.Get(id)
}

func (r *Registry) Logout() error {
	return r.kv.Delete(storage.CurrentUserKey)
}
