// Package videos exposes YouTube search, details, and trending lists with a
// Redis cache in front of the quota-limited API.
package videos

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const defaultMaxResults = 20

// ErrVideoNotFound is returned when the requested video ID does not exist.
var ErrVideoNotFound = errors.New("video not found")

type Thumbnail struct {
	Default string `json:"default"`
	Medium  string `json:"medium"`
	High    string `json:"high"`
}

type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelTitle string    `json:"channelTitle"`
	ChannelID    string    `json:"channelId"`
	PublishedAt  string    `json:"publishedAt"`
	Thumbnail    Thumbnail `json:"thumbnail"`
}

type SearchPage struct {
	Videos        []Video `json:"videos"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
	TotalResults  int64   `json:"totalResults"`
}

type VideoDetails struct {
	Video
	Duration     string   `json:"duration"`
	ViewCount    uint64   `json:"viewCount"`
	LikeCount    uint64   `json:"likeCount"`
	CommentCount uint64   `json:"commentCount"`
	CategoryID   string   `json:"categoryId"`
	Tags         []string `json:"tags"`
}

// api is the upstream surface; the Service fronts it with the cache.
type api interface {
	search(ctx context.Context, query, pageToken string) (SearchPage, error)
	details(ctx context.Context, id string) (VideoDetails, error)
	trending(ctx context.Context, region string) ([]Video, error)
	byCategory(ctx context.Context, categoryID string) ([]Video, error)
}

type youtubeAPI struct {
	svc *youtube.Service
}

func newYouTubeAPI(ctx context.Context, apiKey string) (*youtubeAPI, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &youtubeAPI{svc: svc}, nil
}

func (y *youtubeAPI) search(ctx context.Context, query, pageToken string) (SearchPage, error) {
	call := y.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("relevance").
		SafeSearch("moderate").
		MaxResults(defaultMaxResults).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return SearchPage{}, fmt.Errorf("youtube search: %w", err)
	}

	page := SearchPage{
		Videos:        make([]Video, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	if resp.PageInfo != nil {
		page.TotalResults = resp.PageInfo.TotalResults
	}
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		sn := item.Snippet
		v := Video{
			ID:           item.Id.VideoId,
			Title:        sn.Title,
			Description:  sn.Description,
			ChannelTitle: sn.ChannelTitle,
			ChannelID:    sn.ChannelId,
			PublishedAt:  sn.PublishedAt,
		}
		if sn.Thumbnails != nil {
			if sn.Thumbnails.Default != nil {
				v.Thumbnail.Default = sn.Thumbnails.Default.Url
			}
			if sn.Thumbnails.Medium != nil {
				v.Thumbnail.Medium = sn.Thumbnails.Medium.Url
			}
			if sn.Thumbnails.High != nil {
				v.Thumbnail.High = sn.Thumbnails.High.Url
			}
		}
		page.Videos = append(page.Videos, v)
	}
	return page, nil
}

func (y *youtubeAPI) details(ctx context.Context, id string) (VideoDetails, error) {
	resp, err := y.svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return VideoDetails{}, fmt.Errorf("youtube video details: %w", err)
	}
	if len(resp.Items) == 0 {
		return VideoDetails{}, ErrVideoNotFound
	}

	item := resp.Items[0]
	d := VideoDetails{Video: videoFromSnippet(item.Id, item.Snippet)}
	if item.Snippet != nil {
		d.CategoryID = item.Snippet.CategoryId
		d.Tags = item.Snippet.Tags
	}
	if item.ContentDetails != nil {
		d.Duration = formatDuration(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		d.ViewCount = item.Statistics.ViewCount
		d.LikeCount = item.Statistics.LikeCount
		d.CommentCount = item.Statistics.CommentCount
	}
	return d, nil
}

func (y *youtubeAPI) trending(ctx context.Context, region string) ([]Video, error) {
	resp, err := y.svc.Videos.List([]string{"snippet"}).
		Chart("mostPopular").
		RegionCode(region).
		MaxResults(defaultMaxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube trending: %w", err)
	}

	out := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		out = append(out, videoFromSnippet(item.Id, item.Snippet))
	}
	return out, nil
}

func (y *youtubeAPI) byCategory(ctx context.Context, categoryID string) ([]Video, error) {
	resp, err := y.svc.Videos.List([]string{"snippet"}).
		Chart("mostPopular").
		VideoCategoryId(categoryID).
		MaxResults(defaultMaxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube category: %w", err)
	}

	out := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		out = append(out, videoFromSnippet(item.Id, item.Snippet))
	}
	return out, nil
}

func videoFromSnippet(id string, sn *youtube.VideoSnippet) Video {
	v := Video{ID: id}
	if sn == nil {
		return v
	}
	v.Title = sn.Title
	v.Description = sn.Description
	v.ChannelTitle = sn.ChannelTitle
	v.ChannelID = sn.ChannelId
	v.PublishedAt = sn.PublishedAt
	if sn.Thumbnails != nil {
		if sn.Thumbnails.Default != nil {
			v.Thumbnail.Default = sn.Thumbnails.Default.Url
		}
		if sn.Thumbnails.Medium != nil {
			v.Thumbnail.Medium = sn.Thumbnails.Medium.Url
		}
		if sn.Thumbnails.High != nil {
			v.Thumbnail.High = sn.Thumbnails.High.Url
		}
	}
	return v
}
