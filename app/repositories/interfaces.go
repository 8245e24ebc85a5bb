package repositories

import "blog/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetBySlug(slug string) (*models.Post, error)
	List() ([]*models.Post, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByPost(slug string) ([]*models.Comment, error)
	CountByPost(slug string) (int, error)
}
