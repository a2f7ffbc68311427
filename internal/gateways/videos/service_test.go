package videos

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	searchCalls   int
	trendingCalls int
	page          SearchPage
	trendingList  []Video
}

func (f *fakeAPI) search(ctx context.Context, query, pageToken string) (SearchPage, error) {
	f.searchCalls++
	return f.page, nil
}

func (f *fakeAPI) details(ctx context.Context, id string) (VideoDetails, error) {
	if id == "missing" {
		return VideoDetails{}, ErrVideoNotFound
	}
	return VideoDetails{Video: Video{ID: id}, Duration: "4:05"}, nil
}

func (f *fakeAPI) trending(ctx context.Context, region string) ([]Video, error) {
	f.trendingCalls++
	return f.trendingList, nil
}

func (f *fakeAPI) byCategory(ctx context.Context, categoryID string) ([]Video, error) {
	return f.trendingList, nil
}

func newCachedService(t *testing.T) (*Service, *fakeAPI, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	fake := &fakeAPI{
		page: SearchPage{
			Videos:        []Video{{ID: "v1", Title: "First"}},
			NextPageToken: "tok2",
			TotalResults:  41,
		},
		trendingList: []Video{{ID: "t1", Title: "Trending"}},
	}
	return &Service{api: fake, cache: NewCache(client)}, fake, mr
}

func TestSearchCachesPages(t *testing.T) {
	ctx := context.Background()
	svc, fake, _ := newCachedService(t)

	first, err := svc.Search(ctx, "go concurrency", "")
	require.NoError(t, err)
	require.Equal(t, "tok2", first.NextPageToken)
	require.Equal(t, 1, fake.searchCalls)

	// Same query and page comes from the cache.
	second, err := svc.Search(ctx, "go concurrency", "")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, fake.searchCalls)

	// A different page token is a different cache entry.
	_, err = svc.Search(ctx, "go concurrency", "tok2")
	require.NoError(t, err)
	require.Equal(t, 2, fake.searchCalls)
}

func TestSearchCacheExpiry(t *testing.T) {
	ctx := context.Background()
	svc, fake, mr := newCachedService(t)

	_, err := svc.Search(ctx, "go concurrency", "")
	require.NoError(t, err)

	mr.FastForward(searchTTL * 2)

	_, err = svc.Search(ctx, "go concurrency", "")
	require.NoError(t, err)
	require.Equal(t, 2, fake.searchCalls)
}

func TestTrendingCacheHitSkipsUpstream(t *testing.T) {
	ctx := context.Background()
	svc, fake, _ := newCachedService(t)

	list, err := svc.Trending(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1, fake.trendingCalls)

	list, err = svc.Trending(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1, fake.trendingCalls)

	// Regions are cached independently.
	_, err = svc.Trending(ctx, "KG")
	require.NoError(t, err)
	require.Equal(t, 2, fake.trendingCalls)
}

func TestRefreshTrendingWarmsCache(t *testing.T) {
	ctx := context.Background()
	svc, fake, _ := newCachedService(t)

	svc.RefreshTrending(ctx)
	require.Equal(t, 1, fake.trendingCalls)

	// The browse path now hits the warmed entry.
	list, err := svc.Trending(ctx, defaultRegion)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1, fake.trendingCalls)
}

func TestDetailsNotFound(t *testing.T) {
	svc, _, _ := newCachedService(t)

	_, err := svc.Details(context.Background(), "missing")
	require.ErrorIs(t, err, ErrVideoNotFound)

	d, err := svc.Details(context.Background(), "v1")
	require.NoError(t, err)
	require.Equal(t, "4:05", d.Duration)
}

func TestNilCacheIsPassthrough(t *testing.T) {
	fake := &fakeAPI{page: SearchPage{Videos: []Video{{ID: "v1"}}}}
	svc := &Service{api: fake, cache: nil}

	_, err := svc.Search(context.Background(), "q", "")
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "q", "")
	require.NoError(t, err)
	require.Equal(t, 2, fake.searchCalls)
}
