package store

import (
	"fmt"
	"time"

	"github.com/pavelanni/tutorhub/internal/model"
)

// ExportAllSessions builds export-ready transcripts from all tutoring
// sessions, in session creation order.
func (s *Store) ExportAllSessions() ([]model.SessionExport, error) {
	sessions, err := s.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var out []model.SessionExport
	for _, sess := range sessions {
		turns, err := s.GetTurns(sess.ID)
		if err != nil {
			return nil, fmt.Errorf("get turns for %s: %w", sess.ID, err)
		}

		var exported []model.TurnExport
		for _, t := range turns {
			exported = append(exported, model.TurnExport{
				Role:      t.Role,
				Content:   t.Content,
				CreatedAt: t.CreatedAt.Format(time.RFC3339),
			})
		}

		out = append(out, model.SessionExport{
			SessionID:  sess.ID,
			Accessible: sess.Accessible,
			CreatedAt:  sess.CreatedAt.Format(time.RFC3339),
			Turns:      exported,
		})
	}

	return out, nil
}
