package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// ScheduleResult counts the reminders ScheduleSeason created.
type ScheduleResult struct {
	Added    int
	Existing int
	Past     int
}

// ScheduleSeason adds an episode reminder for every episode of the season
// that airs today or later. Episodes without an air date are skipped.
func (s *Service) ScheduleSeason(ctx context.Context, tvID, seasonNumber int) (ScheduleResult, error) {
	var result ScheduleResult

	season, _, err := s.client.CachedGetSeason(ctx, tvID, seasonNumber, false)
	if err != nil {
		return result, err
	}

	showName, err := s.showName(ctx, tvID)
	if err != nil {
		return result, err
	}

	today := s.today()
	for _, ep := range season.Episodes {
		if ep.AirDate == "" || ep.AirDate < today {
			result.Past++
			continue
		}
		added, err := s.stores.Reminders.AddEpisodeReminder(store.EpisodeReminder{
			TVID:          tvID,
			ShowName:      showName,
			SeasonNumber:  seasonNumber,
			EpisodeNumber: ep.EpisodeNumber,
			EpisodeName:   ep.Name,
			AirDate:       ep.AirDate,
		})
		if err != nil {
			return result, err
		}
		if added {
			result.Added++
		} else {
			result.Existing++
		}
	}
	return result, nil
}

func (s *Service) showName(ctx context.Context, tvID int) (string, error) {
	show, err := s.stores.Shows.GetShow(tvID, tmdb.MediaTV)
	if err == nil {
		return show.Title, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	meta, err := s.client.GetMetadataByID(ctx, tvID, tmdb.MediaTV, false)
	if err != nil {
		return "", fmt.Errorf("failed to fetch tv %d: %w", tvID, err)
	}
	return meta.Title, nil
}
