package mock

import (
	"fmt"
	"sort"
	"sync"

	"blog/app/models"
	"blog/app/repositories"
)

type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex
	// Err, when set, is returned by every call.
	Err error
}

type CommentRepository struct {
	comments map[string][]*models.Comment
	nextID   int
	mutex    sync.RWMutex
	Err      error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*models.Post)}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[string][]*models.Comment),
		nextID:   1,
	}
}

// PostRepository implementation
func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[post.Slug]; exists {
		return fmt.Errorf("%w: %s", repositories.ErrDuplicateSlug, post.Slug)
	}
	stored := *post
	stored.Comments = nil
	m.posts[post.Slug] = &stored
	return nil
}

func (m *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[slug]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *post
	return &out, nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		out := *post
		posts = append(posts, &out)
	}
	// Key order, like the Badger implementation
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	comment.ID = m.nextID
	m.nextID++
	stored := *comment
	stored.Post = nil
	m.comments[comment.PostSlug] = append(m.comments[comment.PostSlug], &stored)
	return nil
}

func (m *CommentRepository) ListByPost(slug string) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	var comments []*models.Comment
	for _, c := range m.comments[slug] {
		out := *c
		comments = append(comments, &out)
	}
	return comments, nil
}

func (m *CommentRepository) CountByPost(slug string) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.comments[slug]), nil
}

// Total returns the number of stored comments across all posts.
func (m *CommentRepository) Total() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	total := 0
	for _, list := range m.comments {
		total += len(list)
	}
	return total
}
