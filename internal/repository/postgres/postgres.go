package postgres

import (
	"database/sql"

	"rentflow-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.ReceiptRepository
	repository.DiscrepancyRepository
	repository.AvizoRepository
	repository.SequenceRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		BookingRepository:     NewBookingRepository(db),
		ReceiptRepository:     NewReceiptRepository(db),
		DiscrepancyRepository: NewDiscrepancyRepository(db),
		AvizoRepository:       NewAvizoRepository(db),
		SequenceRepository:    NewSequenceRepository(db),
		AuditRepository:       NewAuditRepository(db),
	}
}
