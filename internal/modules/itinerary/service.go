// README: Itinerary service; LLM-backed creation plus read, update and delete pass-throughs.
package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eztravel/internal/ai"
	"eztravel/internal/types"
)

const (
	DefaultWeather     = "any"
	UnknownDestination = "Unknown"
)

var (
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("itinerary not found")
	ErrPromptBlocked    = errors.New("prompt rejected by safety filter")
	ErrGenerationFailed = errors.New("failed to create itinerary")
)

type Repository interface {
	Create(ctx context.Context, it *Itinerary) (int64, error)
	Get(ctx context.Context, id int64) (*Itinerary, error)
	ListByUser(ctx context.Context, userID int64) ([]Itinerary, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Generator interface {
	GenerateItinerary(ctx context.Context, prompt string) ai.PromptResult
}

type Recorder interface {
	RecordItineraryCreated()
}

type Service struct {
	store   Repository
	gen     Generator
	metrics Recorder
	log     *slog.Logger
}

func NewService(store Repository, gen Generator, rec Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, gen: gen, metrics: rec, log: logger}
}

type CreateCommand struct {
	UserID       int64
	HasDest      bool
	Destination  string
	Days         int
	Weather      string
	Activities   []string
	CostRange    []int64
	CurrLocation string
}

type UpdateCommand struct {
	Title    string
	Location string
	Days     int
	Data     json.RawMessage
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Created, error) {
	cmd.Destination = strings.TrimSpace(cmd.Destination)
	if cmd.UserID <= 0 || cmd.Days <= 0 {
		return nil, ErrBadRequest
	}
	if cmd.HasDest && cmd.Destination == "" {
		return nil, ErrBadRequest
	}

	var prompt string
	if cmd.HasDest {
		prompt = fixedDestinationPrompt(cmd)
	} else {
		prompt = openDestinationPrompt(cmd)
	}

	res := s.gen.GenerateItinerary(ctx, prompt)
	if res.Blocked {
		return nil, ErrPromptBlocked
	}
	if !res.OK() {
		s.log.Error("itinerary generation failed", "user_id", cmd.UserID, "reason", res.Err)
		return nil, ErrGenerationFailed
	}

	destination := cmd.Destination
	if !cmd.HasDest {
		destination = res.Output.Destination
		if destination == "" {
			destination = UnknownDestination
		}
	}
	data := normalizeData(res.Output.Itinerary)
	title := fmt.Sprintf("%d-day trip to %s", cmd.Days, destination)

	id, err := s.store.Create(ctx, &Itinerary{
		UserID:   cmd.UserID,
		Title:    title,
		Location: destination,
		Days:     cmd.Days,
		Data:     data,
	})
	if err != nil {
		s.log.Error("itinerary insert failed", "user_id", cmd.UserID, "error", err)
		return nil, ErrGenerationFailed
	}
	if s.metrics != nil {
		s.metrics.RecordItineraryCreated()
	}

	return &Created{ID: id, Title: title, Destination: destination, Result: data}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Itinerary, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Itinerary, error) {
	if userID <= 0 {
		return nil, ErrBadRequest
	}
	out, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Itinerary{}
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, cmd UpdateCommand) error {
	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Location = strings.TrimSpace(cmd.Location)
	if cmd.Title == "" || cmd.Location == "" || cmd.Days <= 0 {
		return ErrBadRequest
	}
	cmd.Data = normalizeData(cmd.Data)

	ok, err := s.store.Update(ctx, id, cmd)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func openDestinationPrompt(cmd CreateCommand) string {
	budget := types.NewBudget(cmd.CostRange)
	return fmt.Sprintf(
		"Suggest a destination and plan a %d-day trip. Preferred activities: %s. Weather preference: %s. Budget: %d to %d. Travelling from: %s.",
		cmd.Days, activitiesOrAny(cmd.Activities), weatherOrDefault(cmd.Weather), budget.Low, budget.High, locationOrUnspecified(cmd.CurrLocation),
	)
}

func fixedDestinationPrompt(cmd CreateCommand) string {
	budget := types.NewBudget(cmd.CostRange)
	return fmt.Sprintf(
		"Plan a %d-day trip to %s. Preferred activities: %s. Weather preference: %s. Budget: %d to %d.",
		cmd.Days, cmd.Destination, activitiesOrAny(cmd.Activities), weatherOrDefault(cmd.Weather), budget.Low, budget.High,
	)
}

func weatherOrDefault(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return DefaultWeather
	}
	return v
}

func activitiesOrAny(list []string) string {
	var kept []string
	for _, a := range list {
		if a = strings.TrimSpace(a); a != "" {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		return "any"
	}
	return strings.Join(kept, ", ")
}

func locationOrUnspecified(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "unspecified"
	}
	return v
}
