package repositories

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateSlug = errors.New("slug already in use")
)

// Options controls how the Badger database is opened.
type Options struct {
	Path     string
	InMemory bool
	Logger   *zap.SugaredLogger
}

// Open opens (or creates) the Badger database described by opts.
func Open(opts Options) (*badger.DB, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, errors.New("database path is required")
		}
		bopts = badger.DefaultOptions(opts.Path)
	}

	if opts.Logger != nil {
		bopts = bopts.WithLogger(badgerLogger{opts.Logger.Named("badger")})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := badger.Open(bopts.WithNumVersionsToKeep(1))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// badgerLogger adapts a zap logger to badger.Logger.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
