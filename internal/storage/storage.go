package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/cesarberbelbr/household-finance-manager/internal/config"
)

// Tx is the unit of work behind a Writer.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Storage struct {
	DB     *sql.DB
	Reader *Reader
	begin  func(ctx context.Context) (*Writer, error)
}

// New assembles a Storage from an existing reader and a transaction factory.
func New(reader *Reader, begin func(ctx context.Context) (*Writer, error)) *Storage {
	return &Storage{Reader: reader, begin: begin}
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.Postgres.URL())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return NewFromDB(db), nil
}

func NewFromDB(db *sql.DB) *Storage {
	exec := bob.NewDB(db)
	return &Storage{
		DB:     db,
		Reader: NewReader(exec),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := exec.BeginTx(ctx, nil)
			if err != nil {
				return nil, fmt.Errorf("begin transaction: %w", err)
			}
			return newBobWriter(tx), nil
		},
	}
}

// Write opens a transaction. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.begin(ctx)
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
