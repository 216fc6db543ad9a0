package storage

import "github.com/adibhanna/focusup/internal/models"

// ProgressRepository reads and writes per-user progress.
type ProgressRepository struct {
	kv KV
}

func NewProgressRepository(kv KV) *ProgressRepository {
	return &ProgressRepository{kv: kv}
}

func (r *ProgressRepository) Load(userID string) models.UserProgress {
	p := Load(r.kv, ProgressKey(userID), models.EmptyProgress())
	if p.Sessions == nil {
		p.Sessions = []models.SessionRecord{}
	}
	return p
}

func (r *ProgressRepository) Save(userID string, p models.UserProgress) error {
	return Save(r.kv, ProgressKey(userID), p)
}
