// Package blog lists the store's blog posts.
package blog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wichananm65/storefront/internal/backend"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	CreatedAt string `json:"createdAt"`
}

type Repository interface {
	List(ctx context.Context) ([]Post, error)
}

type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(c *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: c}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := r.client.Get(ctx, "/api/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Search returns posts in category (CategoryAll or empty for any) whose
// title contains query, ignoring case.
func (s *Service) Search(ctx context.Context, query, category string) ([]Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn("blog fetch failed", "error", err)
		return nil, err
	}
	return Filter(posts, query, category), nil
}

func Filter(posts []Post, query, category string) []Post {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists the distinct categories of posts in first-seen order,
// preceded by CategoryAll.
func Categories(posts []Post) []string {
	out := []string{CategoryAll}
	seen := map[string]bool{}
	for _, p := range posts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
