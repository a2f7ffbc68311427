package videos

import (
	"context"
	"fmt"
	"log"
)

const defaultRegion = "US"

// Service fronts the YouTube API with the Redis cache. Search pages and
// trending lists are cached; details are cheap enough to fetch every time.
type Service struct {
	api   api
	cache *Cache
}

// NewService builds the YouTube-backed service. cache may be nil.
func NewService(ctx context.Context, apiKey string, cache *Cache) (*Service, error) {
	yt, err := newYouTubeAPI(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return &Service{api: yt, cache: cache}, nil
}

func (s *Service) Search(ctx context.Context, query, pageToken string) (SearchPage, error) {
	if query == "" {
		return SearchPage{}, fmt.Errorf("query is required")
	}

	key := searchKey(query, pageToken)
	var page SearchPage
	if s.cache.get(ctx, key, &page) {
		return page, nil
	}

	page, err := s.api.search(ctx, query, pageToken)
	if err != nil {
		return SearchPage{}, err
	}
	s.cache.set(ctx, key, page, searchTTL)
	return page, nil
}

func (s *Service) Details(ctx context.Context, id string) (VideoDetails, error) {
	if id == "" {
		return VideoDetails{}, fmt.Errorf("video id is required")
	}
	return s.api.details(ctx, id)
}

func (s *Service) Trending(ctx context.Context, region string) ([]Video, error) {
	if region == "" {
		region = defaultRegion
	}

	key := trendingKey(region)
	var list []Video
	if s.cache.get(ctx, key, &list) {
		return list, nil
	}

	list, err := s.api.trending(ctx, region)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, key, list, trendingTTL)
	return list, nil
}

func (s *Service) ByCategory(ctx context.Context, categoryID string) ([]Video, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("category id is required")
	}
	return s.api.byCategory(ctx, categoryID)
}

// RefreshTrending re-fetches the default region's trending list and rewrites
// the cache entry. Run from the cron scheduler so the hot path mostly hits
// a warm cache.
func (s *Service) RefreshTrending(ctx context.Context) {
	list, err := s.api.trending(ctx, defaultRegion)
	if err != nil {
		log.Printf("[warn] operation=refresh_trending region=%s error=%v", defaultRegion, err)
		return
	}
	s.cache.set(ctx, trendingKey(defaultRegion), list, trendingTTL)
	log.Printf("[info] operation=refresh_trending region=%s videos=%d", defaultRegion, len(list))
}
