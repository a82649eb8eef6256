// Package poll records daily student poll responses and tallies them per class.
package poll

import (
	"context"
	"strings"
	"time"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// Repository is the part of the record store poll aggregation needs
type Repository interface {
	ListClasses(ctx context.Context) ([]schema.Class, error)
	GetStudentByID(ctx context.Context, id string) (*schema.Student, error)
	UpsertPollResponse(ctx context.Context, response schema.DailyPollResponse) (*schema.DailyPollResponse, error)
	ListPollResponses(ctx context.Context, classID string, date time.Time) ([]schema.DailyPollResponse, error)
}

// SubmitInput is one student's answer for a day. A zero Date means today.
type SubmitInput struct {
	ClassID          string
	StudentID        string
	Date             time.Time
	FeelsRepresented bool
	LikesLeader      bool
}

// Tally is the aggregate of a class for one day
type Tally struct {
	ClassID               string `json:"class_id"`
	Date                  string `json:"date"`
	Respondents           int    `json:"respondents"`
	FeelsRepresentedCount int    `json:"feels_represented_count"`
	LikesLeaderCount      int    `json:"likes_leader_count"`
	// Percentages are whole numbers, 0 when nobody responded
	FeelsRepresentedPercent int `json:"feels_represented_percent"`
	LikesLeaderPercent      int `json:"likes_leader_percent"`
}

// Aggregate counts the responses matching the class and day
func Aggregate(classID string, date time.Time, responses []schema.DailyPollResponse) Tally {
	day := domain.PollDate(date)
	tally := Tally{
		ClassID: classID,
		Date:    day.Format(domain.POLL_DATE_LAYOUT),
	}

	for _, r := range responses {
		if r.ClassID != classID || !domain.PollDate(r.Date).Equal(day) {
			continue
		}
		tally.Respondents++
		if r.FeelsRepresented {
			tally.FeelsRepresentedCount++
		}
		if r.LikesLeader {
			tally.LikesLeaderCount++
		}
	}

	tally.FeelsRepresentedPercent = percent(tally.FeelsRepresentedCount, tally.Respondents)
	tally.LikesLeaderPercent = percent(tally.LikesLeaderCount, tally.Respondents)

	return tally
}

func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return (count*200 + total) / (total * 2)
}

// Service submits and aggregates poll responses
type Service struct {
	repo  Repository
	clock adapter.Clock
}

// NewService creates a poll service
func NewService(repo Repository, clock adapter.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// Submit upserts the response of (class, student, date); a second submission on the same day replaces the first
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*schema.DailyPollResponse, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(input.ClassID) == "" {
		verr.Add("class_id", "class_id is required")
	}
	if strings.TrimSpace(input.StudentID) == "" {
		verr.Add("student_id", "student_id is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	student, err := s.repo.GetStudentByID(ctx, input.StudentID)
	if err != nil {
		return nil, domain.NewPersistenceError("get student", err)
	}
	if student == nil {
		return nil, domain.NewNotFoundError("student", input.StudentID)
	}
	if student.ClassID != input.ClassID {
		return nil, domain.NewValidationError("class_id", "student does not belong to this class")
	}

	date := input.Date
	if date.IsZero() {
		date = s.clock.Today()
	}

	response, err := s.repo.UpsertPollResponse(ctx, schema.DailyPollResponse{
		ClassID:          input.ClassID,
		StudentID:        input.StudentID,
		Date:             domain.PollDate(date),
		FeelsRepresented: input.FeelsRepresented,
		LikesLeader:      input.LikesLeader,
	})
	if err != nil {
		return nil, domain.NewPersistenceError("upsert poll response", err)
	}

	return response, nil
}

// AggregateForDate tallies one class for a day
func (s *Service) AggregateForDate(ctx context.Context, classID string, date time.Time) (Tally, error) {
	responses, err := s.repo.ListPollResponses(ctx, classID, date)
	if err != nil {
		return Tally{}, domain.NewPersistenceError("list poll responses", err)
	}
	return Aggregate(classID, date, responses), nil
}

// AggregateAll tallies every class for a day, in period order
func (s *Service) AggregateAll(ctx context.Context, date time.Time) ([]Tally, error) {
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("list classes", err)
	}

	responses, err := s.repo.ListPollResponses(ctx, "", date)
	if err != nil {
		return nil, domain.NewPersistenceError("list poll responses", err)
	}

	tallies := make([]Tally, 0, len(classes))
	for _, c := range classes {
		tallies = append(tallies, Aggregate(c.ID, date, responses))
	}
	return tallies, nil
}
