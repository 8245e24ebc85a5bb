package repositories

import (
	"errors"
	"fmt"
	"sync"

	"blog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// commentSeqBandwidth is how many comment IDs are leased from the store at
// a time.
const commentSeqBandwidth = 100

// BadgerCommentRepository implements CommentRepository using BadgerDB.
// Comment IDs come from a leased badger.Sequence, so concurrent writers
// never touch a shared counter key inside their transactions. Call Close
// before closing the database.
type BadgerCommentRepository struct {
	db *badger.DB

	seqOnce sync.Once
	seq     *badger.Sequence
	seqErr  error
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create stores a new comment under its post. The post must exist.
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	id, err := r.nextID()
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(postKey(comment.PostSlug)); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("comment references missing post %q: %w", comment.PostSlug, ErrNotFound)
			}
			return err
		}

		comment.ID = id
		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		// Save comment with post slug in key for efficient listing
		return txn.Set(commentKey(comment.PostSlug, comment.ID), data)
	})
}

// ListByPost retrieves all comments for a post, oldest first
func (r *BadgerCommentRepository) ListByPost(slug string) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = commentPrefix(slug)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByPost counts the comments on a post without decoding them.
func (r *BadgerCommentRepository) CountByPost(slug string) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = commentPrefix(slug)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close hands unused leased IDs back to the store.
func (r *BadgerCommentRepository) Close() error {
	r.seqOnce.Do(func() {})
	if r.seq == nil {
		return nil
	}
	if err := r.seq.Release(); err != nil {
		return fmt.Errorf("failed to release comment sequence: %w", err)
	}
	return nil
}

// nextID returns the next comment ID, starting at 1.
func (r *BadgerCommentRepository) nextID() (int, error) {
	r.seqOnce.Do(func() {
		r.seq, r.seqErr = r.db.GetSequence([]byte(CommentSeqKey), commentSeqBandwidth)
	})
	if r.seqErr != nil {
		return 0, fmt.Errorf("failed to get comment sequence: %w", r.seqErr)
	}
	if r.seq == nil {
		return 0, errors.New("comment repository is closed")
	}

	n, err := r.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to get next comment id: %w", err)
	}
	return int(n) + 1, nil
}
