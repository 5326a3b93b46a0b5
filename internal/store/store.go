// Package store persists tutoring sessions, their turns, and grading
// records in SQLite. Keeping conversation history keyed by an explicit
// session id (rather than a process-wide list) is what lets unrelated
// callers hold independent conversations.
package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pavelanni/tutorhub/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tutor_sessions (
		id TEXT PRIMARY KEY,
		accessible INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tutor_turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (session_id) REFERENCES tutor_sessions(id)
	);

	CREATE TABLE IF NOT EXISTS grade_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		class TEXT NOT NULL,
		result TEXT NOT NULL,
		next_class TEXT NOT NULL,
		graded_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS app_metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateSession creates a tutoring session with a fresh random id.
func (s *Store) CreateSession(accessible bool) (string, error) {
	id, err := generateToken()
	if err != nil {
		return "", err
	}
	_, err = s.db.Exec(
		`INSERT INTO tutor_sessions (id, accessible, created_at) VALUES (?, ?, ?)`,
		id, accessible, time.Now(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetSession returns the session with the given id, or nil if not found.
func (s *Store) GetSession(id string) (*model.TutorSession, error) {
	var sess model.TutorSession
	err := s.db.QueryRow(
		`SELECT id, accessible, created_at FROM tutor_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Accessible, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// ListSessions returns all tutoring sessions in creation order.
func (s *Store) ListSessions() ([]model.TutorSession, error) {
	rows, err := s.db.Query(
		`SELECT id, accessible, created_at FROM tutor_sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.TutorSession
	for rows.Next() {
		var sess model.TutorSession
		if err := rows.Scan(&sess.ID, &sess.Accessible, &sess.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// AppendTurns stores turns in one transaction, so a user turn is never
// persisted without its matching reply.
func (s *Store) AppendTurns(sessionID string, turns ...model.Turn) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, t := range turns {
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if _, err := tx.Exec(
			`INSERT INTO tutor_turns (session_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
			sessionID, t.Role, t.Content, createdAt,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetTurns returns a session's turns in insertion order.
func (s *Store) GetTurns(sessionID string) ([]model.Turn, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, role, content, created_at FROM tutor_turns
		 WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []model.Turn
	for rows.Next() {
		var t model.Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// InsertGradeRecord stores the outcome of one grading decision.
func (s *Store) InsertGradeRecord(rec model.GradeRecord) (int64, error) {
	gradedAt := rec.GradedAt
	if gradedAt.IsZero() {
		gradedAt = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO grade_records (class, result, next_class, graded_at) VALUES (?, ?, ?, ?)`,
		rec.Class, rec.Result, rec.NextClass, gradedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListGradeRecords returns all grading decisions, newest first.
func (s *Store) ListGradeRecords() ([]model.GradeRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, class, result, next_class, graded_at FROM grade_records ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.GradeRecord
	for rows.Next() {
		var r model.GradeRecord
		if err := rows.Scan(&r.ID, &r.Class, &r.Result, &r.NextClass, &r.GradedAt); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

func generateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
