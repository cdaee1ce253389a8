package repository

import (
	"context"
	"database/sql"
	"time"

	"printer_probe/internal/models"
	"printer_probe/internal/repository/db"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type StateRepo interface {
	Save(ctx context.Context, s models.ProbeState) error
	Load(ctx context.Context) (models.ProbeState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ProbeEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ProbeEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(database),
		EventRepo: NewEventSQLite(database),
		Auth:      NewUserRepository(database),
	}
}

// InitDB opens/creates the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
