package leaderboard

import (
	"slices"
	"time"

	"github.com/adibhanna/focusup/internal/aggregate"
	"github.com/adibhanna/focusup/internal/clock"
	"github.com/adibhanna/focusup/internal/models"
)

type Entry struct {
	ID            string `yaml:"id" json:"id"`
	Name          string `yaml:"name" json:"name"`
	WeeklyMinutes int    `yaml:"weekly_minutes" json:"weeklyMinutes"`
}

type Standing struct {
	Entry
	Rank          int
	Title         string
	IsCurrentUser bool
}

// Hours is the weekly total in hours.
func (s Standing) Hours() float64 {
	return float64(s.WeeklyMinutes) / 60
}

// Build merges live and external entries and ranks them by weekly minutes.
// A live entry replaces any external entry with the same id. Equal totals
// keep their merged order.
func Build(live, external []Entry, currentID string) []Standing {
	seen := make(map[string]bool, len(live)+len(external))
	merged := make([]Entry, 0, len(live)+len(external))
	for _, group := range [][]Entry{live, external} {
		for _, e := range group {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			merged = append(merged, e)
		}
	}

	slices.SortStableFunc(merged, func(a, b Entry) int {
		return b.WeeklyMinutes - a.WeeklyMinutes
	})

	board := make([]Standing, len(merged))
	for i, e := range merged {
		board[i] = Standing{
			Entry:         e,
			Rank:          i + 1,
			Title:         Title(i + 1),
			IsCurrentUser: e.ID == currentID,
		}
	}
	return board
}

// RankOf returns the 1-based rank of id on the board.
func RankOf(board []Standing, id string) (int, bool) {
	for _, s := range board {
		if s.ID == id {
			return s.Rank, true
		}
	}
	return 0, false
}

func Title(rank int) string {
	switch {
	case rank == 1:
		return "King"
	case rank == 2:
		return "Duke"
	case rank == 3:
		return "Marquis"
	case rank <= 50:
		return "Master"
	case rank <= 100:
		return "Knight"
	case rank <= 150:
		return "Virtuoso"
	default:
		return "Newbie"
	}
}

type UserLister interface {
	List() []models.User
}

type ProgressLoader interface {
	Load(userID string) models.UserProgress
}

// Service assembles the weekly board from local profiles and external entries.
type Service struct {
	users    UserLister
	progress ProgressLoader
	external []Entry
	clock    clock.Clock
}

func NewService(users UserLister, progress ProgressLoader, external []Entry, clk clock.Clock) *Service {
	return &Service{users: users, progress: progress, external: external, clock: clk}
}

// Board ranks every known user. The current user's entry is computed from
// the progress passed in, which may be newer than what is stored.
func (s *Service) Board(current models.User, progress models.UserProgress) []Standing {
	now := s.clock.Now()
	self := liveEntry(current, progress, now)

	live := []Entry{}
	found := false
	for _, u := range s.users.List() {
		if u.ID == current.ID {
			live = append(live, self)
			found = true
			continue
		}
		live = append(live, liveEntry(u, s.progress.Load(u.ID), now))
	}
	if !found {
		live = append([]Entry{self}, live...)
	}
	return Build(live, s.external, current.ID)
}

func liveEntry(u models.User, p models.UserProgress, now time.Time) Entry {
	return Entry{
		ID:            u.ID,
		Name:          u.Name,
		WeeklyMinutes: aggregate.WeeklyMinutes(p.Snapshot(), now),
	}
}
