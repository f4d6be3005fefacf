package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"medbridge/internal/adapters/persistence/models"
	"medbridge/internal/adapters/persistence/repositories"
)

// AuditService appends administrative mutations to the action log.
// Appends are advisory: Record never blocks and never fails the caller.
// Entries flow through a buffered channel to a background writer; a full
// buffer drops the entry with an operational log line.
type AuditService struct {
	repo    repositories.ActionLogRepository
	entries chan *models.ActionLog
	wg      sync.WaitGroup
	once    sync.Once

	// mu guards closed so Record cannot send on a closed channel
	mu     sync.RWMutex
	closed bool
}

const auditBufferSize = 256

// NewAuditService creates an audit service and starts its writer
func NewAuditService(repo repositories.ActionLogRepository) *AuditService {
	s := &AuditService{
		repo:    repo,
		entries: make(chan *models.ActionLog, auditBufferSize),
	}

	s.wg.Add(1)
	go s.writer()

	return s
}

// Record queues an audit entry for the given actor. The detail payload is
// serialized to JSON; a payload that cannot be serialized is recorded as
// an empty object rather than lost. Calling Record after Close drops the
// entry instead of panicking.
func (s *AuditService) Record(actorID uint, action string, details interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		log.Printf("⚠️ Failed to encode audit details for %s: %v", action, err)
		payload = []byte("{}")
	}

	entry := &models.ActionLog{
		UserID:  actorID,
		Action:  action,
		Details: string(payload),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		log.Printf("⚠️ Audit log closed, dropping entry: %s by user %d", action, actorID)
		return
	}

	select {
	case s.entries <- entry:
	default:
		log.Printf("⚠️ Audit buffer full, dropping entry: %s by user %d", action, actorID)
	}
}

// writer drains the entry channel until Close
func (s *AuditService) writer() {
	defer s.wg.Done()

	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			log.Printf("⚠️ Failed to append audit entry %s: %v", entry.Action, err)
		}
		cancel()
	}
}

// Close stops accepting entries and waits for queued ones to be written
func (s *AuditService) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.entries)
		s.mu.Unlock()
	})
	s.wg.Wait()
}

// List returns audit entries newest first (admin trail)
func (s *AuditService) List(ctx context.Context, offset, limit int) ([]*models.ActionLog, int64, error) {
	return s.repo.List(ctx, offset, limit)
}
