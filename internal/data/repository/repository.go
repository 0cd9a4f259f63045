package repository

import (
	"club-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking          BookingRepository
	Pool             PoolRepository
	PoolRegistration PoolRegistrationRepository
	Team             TeamRepository
	TeamMember       TeamMemberRepository
	Substitution     SubstitutionRepository
	BookingPlayer    BookingPlayerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking:          NewBookingRepository(db, log),
		Pool:             NewPoolRepository(db, log),
		PoolRegistration: NewPoolRegistrationRepository(db, log),
		Team:             NewTeamRepository(db, log),
		TeamMember:       NewTeamMemberRepository(db, log),
		Substitution:     NewSubstitutionRepository(db, log),
		BookingPlayer:    NewBookingPlayerRepository(db, log),
	}
}
