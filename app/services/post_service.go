package services

import (
	"fmt"
	"sort"
	"strings"

	"blog/app/models"
	"blog/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost creates a new blog post with validation. An empty slug is
// derived from the title.
func (s *PostService) CreatePost(post *models.Post) error {
	post.Title = strings.TrimSpace(post.Title)
	post.Slug = strings.TrimSpace(post.Slug)
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	return s.postRepo.Create(post)
}

// GetPost retrieves a post by slug with its comments, oldest first.
func (s *PostService) GetPost(slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for _, c := range comments {
		c.Post = post
	}
	post.Comments = comments

	return post, nil
}

// PostSummary is a post as shown on the index page.
type PostSummary struct {
	*models.Post
	CommentCount int
}

// ListPosts retrieves every post, newest first. Posts created at the same
// instant are ordered by slug.
func (s *PostService) ListPosts() ([]PostSummary, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].Slug < posts[j].Slug
	})

	summaries := make([]PostSummary, 0, len(posts))
	for _, post := range posts {
		count, err := s.commentRepo.CountByPost(post.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to count comments for post %s: %w", post.Slug, err)
		}
		summaries = append(summaries, PostSummary{Post: post, CommentCount: count})
	}

	return summaries, nil
}
