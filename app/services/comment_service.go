package services

import (
	"fmt"

	"blog/app/models"
	"blog/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// CreateComment stores comment on post. The comment's post reference is
// always taken from post, never from the submitted data.
func (s *CommentService) CreateComment(post *models.Post, comment *models.Comment) error {
	if err := comment.SetPost(post); err != nil {
		return err
	}
	comment.BeforeCreate()

	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}

	return s.commentRepo.Create(comment)
}
