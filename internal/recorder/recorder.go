package recorder

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adibhanna/focusup/internal/clock"
	"github.com/adibhanna/focusup/internal/models"
)

// Repository persists one UserProgress per user.
type Repository interface {
	Load(userID string) models.UserProgress
	Save(userID string, progress models.UserProgress) error
}

// Begin records the target a session starts with as the user's display target.
func Begin(p *models.UserProgress, settings models.SessionSettings) {
	p.DailyTargetMinutes = settings.TargetMinutes
}

// Finalize converts focused seconds into a record and appends it.
func Finalize(p *models.UserProgress, totalFocusedSeconds, targetMinutes int, at time.Time, id string) models.SessionRecord {
	minutes := max(totalFocusedSeconds, 0) / 60
	rec := models.SessionRecord{
		ID:                    id,
		Timestamp:             at,
		DurationMinutes:       minutes,
		TargetMet:             minutes >= targetMinutes,
		TargetDurationMinutes: targetMinutes,
	}
	p.Sessions = append(p.Sessions, rec)
	p.TotalFocusMinutes += minutes
	return rec
}

type Recorder struct {
	repo  Repository
	clock clock.Clock
	newID func() string
}

func New(repo Repository, clk clock.Clock) *Recorder {
	return &Recorder{repo: repo, clock: clk, newID: newRecordID}
}

// Start persists the session's target before the first tick.
func (r *Recorder) Start(userID string, settings models.SessionSettings) error {
	p := r.repo.Load(userID)
	Begin(&p, settings)
	if err := r.repo.Save(userID, p); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Finish appends the finished session to the user's history.
func (r *Recorder) Finish(userID string, totalFocusedSeconds, targetMinutes int) (models.SessionRecord, error) {
	p := r.repo.Load(userID)
	rec := Finalize(&p, totalFocusedSeconds, targetMinutes, r.clock.Now(), r.newID())
	if err := r.repo.Save(userID, p); err != nil {
		return rec, fmt.Errorf("save progress: %w", err)
	}
	return rec, nil
}

// Version 7 ids sort by creation time.
func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
