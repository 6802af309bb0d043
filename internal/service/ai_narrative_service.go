package service

import (
	"context"
	"fmt"
	"time"

	"saga-be/internal/dto"
	"saga-be/internal/entity"
	"saga-be/internal/pkg/serverutils"
	"saga-be/internal/repository/specification"
	"saga-be/internal/repository/unitofwork"
	"saga-be/pkg/narrative"
)

const (
	defaultSummaryYear = 2025
	minYear            = 1900
	maxYear            = 2100
)

type yearWindow struct {
	from time.Time
	to   time.Time
}

func (s *aiService) window(year int) yearWindow {
	from, to := specification.Year(year, s.location)
	return yearWindow{from: from, to: to}
}

// loadYear reads one user's interactions for a year inside a single
// read-only snapshot.
func (s *aiService) loadYear(ctx context.Context, auth serverutils.AuthContext, year int, withExtras bool) (narrative.StatsInput, error) {
	w := s.window(year)
	in := narrative.StatsInput{Location: s.location}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return in, fmt.Errorf("begin: %w", err)
	}
	defer uow.Rollback()

	var err error
	in.Library, err = uow.LibraryRepository().FindAll(ctx,
		specification.OwnedBy{UserID: auth.UserId},
		specification.UpdatedBetween{From: w.from, To: w.to},
		specification.WithContent{},
	)
	if err != nil {
		return in, fmt.Errorf("library: %w", err)
	}

	in.Ratings, err = uow.RatingRepository().FindAll(ctx,
		specification.OwnedBy{UserID: auth.UserId},
		specification.CreatedBetween{From: w.from, To: w.to},
		specification.WithContent{},
	)
	if err != nil {
		return in, fmt.Errorf("ratings: %w", err)
	}

	if withExtras && !in.Empty() {
		if err := loadExtras(ctx, uow, auth, w, &in); err != nil {
			return in, err
		}
	}

	return in, uow.Commit()
}

func loadExtras(ctx context.Context, uow unitofwork.UnitOfWork, auth serverutils.AuthContext, w yearWindow, in *narrative.StatsInput) error {
	reviews, err := uow.ReviewRepository().Count(ctx,
		specification.OwnedBy{UserID: auth.UserId},
		specification.CreatedBetween{From: w.from, To: w.to},
	)
	if err != nil {
		return fmt.Errorf("reviews: %w", err)
	}
	in.ReviewCount = int(reviews)

	activities, err := uow.ActivityRepository().FindAll(ctx,
		specification.OwnedBy{UserID: auth.UserId},
		specification.CreatedBetween{From: w.from, To: w.to},
	)
	if err != nil {
		return fmt.Errorf("activities: %w", err)
	}
	in.ActivityTimes = activityTimes(activities)
	return nil
}

func activityTimes(activities []*entity.Activity) []time.Time {
	out := make([]time.Time, len(activities))
	for i, a := range activities {
		out[i] = a.CreatedAt
	}
	return out
}

func validYear(year int) bool {
	return year >= minYear && year <= maxYear
}

func (s *aiService) Summary(ctx context.Context, auth serverutils.AuthContext, year int) (*dto.SummaryResponse, error) {
	if !auth.Authenticated {
		return nil, ErrUnauthenticated
	}
	if year == 0 {
		year = defaultSummaryYear
	}
	if !validYear(year) {
		return nil, ErrInvalidYear
	}

	in, err := s.loadYear(ctx, auth, year, true)
	if err != nil {
		s.logger.Error(logModule, "Summary load failed", map[string]interface{}{"user_id": auth.UserId.String(), "year": year, "error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	res, stats := s.composer.Summary(ctx, year, in)
	title := fmt.Sprintf("%d Saga Özeti", year)
	if res.Stage == narrative.StageEmpty {
		title = narrative.NoSummaryTitle
	}
	if stats.SkippedMetadata > 0 {
		s.logger.Info(logModule, "Metadata partly skipped", map[string]interface{}{"user_id": auth.UserId.String(), "items": stats.SkippedMetadata})
	}

	return &dto.SummaryResponse{
		Year:          year,
		Title:         title,
		Narrative:     res.Narrative,
		Stats:         stats,
		GeneratedByAi: res.GeneratedByAI,
	}, nil
}

// YearlySummary defaults to the current year in the service location.
func (s *aiService) YearlySummary(ctx context.Context, auth serverutils.AuthContext, year *int) (*dto.YearlySummaryResponse, error) {
	if !auth.Authenticated {
		return nil, ErrUnauthenticated
	}
	target := s.now().In(s.location).Year()
	if year != nil {
		target = *year
	}
	if !validYear(target) {
		return nil, ErrInvalidYear
	}

	in, err := s.loadYear(ctx, auth, target, false)
	if err != nil {
		s.logger.Error(logModule, "Yearly summary load failed", map[string]interface{}{"user_id": auth.UserId.String(), "year": target, "error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrYearlyFailed, err)
	}

	digest := narrative.BuildYearlyDigest(target, in.Library, in.Ratings, s.location)
	res := s.composer.YearlySummary(ctx, digest)

	return &dto.YearlySummaryResponse{
		Year:          target,
		Summary:       res.Narrative,
		Stats:         digest,
		GeneratedByAi: res.GeneratedByAI,
	}, nil
}
