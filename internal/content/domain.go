// Package content implements the three per-user content containers: notes,
// business ideas, and library resources. Every create and delete is paired
// with a usage-counter update on the owner's profile.
package content

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound covers both a missing id and an id owned by another user.
var ErrNotFound = errors.New("content item not found")

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	AudioURL  string    `json:"audioUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IdeaStatus tracks how far along a business idea is.
type IdeaStatus string

const (
	StatusIdea        IdeaStatus = "idea"
	StatusResearch    IdeaStatus = "research"
	StatusPlanning    IdeaStatus = "planning"
	StatusDevelopment IdeaStatus = "development"
	StatusLaunched    IdeaStatus = "launched"
)

func (s IdeaStatus) valid() bool {
	switch s {
	case StatusIdea, StatusResearch, StatusPlanning, StatusDevelopment, StatusLaunched:
		return true
	}
	return false
}

type BusinessIdea struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	TargetMarket     string     `json:"targetMarket"`
	FeasibilityScore int        `json:"feasibilityScore"`
	Status           IdeaStatus `json:"status"`
	Tags             []string   `json:"tags"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ResourceType classifies a library resource.
type ResourceType string

const (
	TypeArticle ResourceType = "article"
	TypeVideo   ResourceType = "video"
	TypeBook    ResourceType = "book"
	TypePodcast ResourceType = "podcast"
	TypeTool    ResourceType = "tool"
	TypeCourse  ResourceType = "course"
	TypeImage   ResourceType = "image"
	TypeOther   ResourceType = "other"
)

func (t ResourceType) valid() bool {
	switch t {
	case TypeArticle, TypeVideo, TypeBook, TypePodcast, TypeTool, TypeCourse, TypeImage, TypeOther:
		return true
	}
	return false
}

type LibraryResource struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Description string       `json:"description"`
	Type        ResourceType `json:"type"`
	Tags        []string     `json:"tags"`
	IsFavorite  bool         `json:"isFavorite"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NoteInput carries the user-editable note fields.
type NoteInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	AudioURL string   `json:"audioUrl"`
}

func (in *NoteInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

type IdeaInput struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	TargetMarket     string   `json:"targetMarket"`
	FeasibilityScore int      `json:"feasibilityScore"`
	Status           string   `json:"status"`
	Tags             []string `json:"tags"`
}

func (in *IdeaInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if in.FeasibilityScore < 1 || in.FeasibilityScore > 10 {
		return fmt.Errorf("feasibilityScore must be between 1 and 10")
	}
	if in.Status == "" {
		in.Status = string(StatusIdea)
	}
	if !IdeaStatus(in.Status).valid() {
		return fmt.Errorf("unknown status %q", in.Status)
	}
	return nil
}

type ResourceInput struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
	IsFavorite  bool     `json:"isFavorite"`
}

func (in *ResourceInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(in.URL) == "" {
		return fmt.Errorf("url is required")
	}
	if in.Type == "" {
		in.Type = string(TypeOther)
	}
	if !ResourceType(in.Type).valid() {
		return fmt.Errorf("unknown resource type %q", in.Type)
	}
	return nil
}
