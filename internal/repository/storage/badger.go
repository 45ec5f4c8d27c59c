package storage

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

type BadgerStorage struct {
	Connection *badger.DB
}

// NewBadgerStorage opens an embedded store at path, or a memory-only one when inMemory is set.
func NewBadgerStorage(path string, inMemory bool, logger *slog.Logger) (*BadgerStorage, error) {
	options := badger.DefaultOptions(path)
	if inMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	}

	options = options.WithLogger(&badgerLogger{logger: logger.With("component", "badger")})

	conn, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &BadgerStorage{Connection: conn}, nil
}

func (that *BadgerStorage) Close() error {
	return that.Connection.Close()
}

// badgerLogger routes badger's printf-style logs into slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (that *badgerLogger) Errorf(format string, args ...any) {
	that.logger.Error(fmt.Sprintf(format, args...))
}

func (that *badgerLogger) Warningf(format string, args ...any) {
	that.logger.Warn(fmt.Sprintf(format, args...))
}

func (that *badgerLogger) Infof(format string, args ...any) {
	that.logger.Debug(fmt.Sprintf(format, args...))
}

func (that *badgerLogger) Debugf(format string, args ...any) {
	that.logger.Debug(fmt.Sprintf(format, args...))
}
