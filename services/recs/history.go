package recs

import (
	"context"
	"fmt"

	"recstream/services/trakt"
)

// The history fetch is capped at this many entries.
const watchedLimit = 200

// FetchWatched returns the IMDB IDs of titles the user has already
// watched for kind, cached for fifteen minutes under
// watched:{kind}:{username}. History is a single source, so an
// upstream failure propagates instead of degrading to a partial set.
func (s *Service) FetchWatched(ctx context.Context, kind, username, clientID string) ([]string, error) {
	cacheKey := "watched:" + kind + ":" + username
	if cached, ok := s.watched.Get(cacheKey); ok {
		return cached, nil
	}

	entries, err := s.trakt.UserHistory(ctx, clientID, username, kind, watchedLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch watch history: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		media := entry.Movie
		if kind == trakt.KindShows {
			media = entry.Show
		}
		if media == nil || media.IDs.IMDB == "" {
			continue
		}
		ids = append(ids, media.IDs.IMDB)
	}

	s.watched.Put(cacheKey, ids, watchedTTL)
	return ids, nil
}
