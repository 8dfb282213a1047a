package storage

import (
	"github.com/gatherkit/server/internal/domain/events"
	"github.com/gatherkit/server/internal/domain/participants"
)

// Repository groups data access by domain. It is the persistence
// gateway handed to the services; handlers never touch it directly.
type Repository interface {
	Events() events.Repository
	Participants() participants.Repository
}
