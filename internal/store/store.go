// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists users and resumes in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/resume-server/pkg/types"
)

const dbFile = "resume.db"

var (
	// ErrEmailTaken is returned when registering an already-known email.
	ErrEmailTaken = errors.New("store: email already registered")

	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = errors.New("store: user not found")

	// ErrResumeNotFound is returned when no resume matches the given ID.
	ErrResumeNotFound = errors.New("store: resume not found")
)

// Store manages the resume-server SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at dataDir/resume.db and bootstraps
// the schema if it does not exist.
func NewStore(cfg types.StorageConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS resumes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			personal_info TEXT NOT NULL,
			experiences TEXT NOT NULL,
			education TEXT NOT NULL,
			skills TEXT NOT NULL,
			template TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resumes_user_id ON resumes(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new account and returns it. The email must be unique.
func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string) (*types.User, error) {
	now := time.Now().UTC()
	user := types.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, passwordHash,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		var exists int
		if s.db.QueryRowContext(ctx,
			`SELECT count(*) FROM users WHERE email = ?`, email,
		).Scan(&exists) == nil && exists > 0 {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail returns the account and its password hash for a login check.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*types.User, string, error) {
	var (
		user                 types.User
		hash                 string
		createdAt, updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Name, &user.Email, &hash, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("querying user: %w", err)
	}

	user.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	user.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &user, hash, nil
}

// CreateResume inserts a resume for userID, assigning ID and timestamps.
// Unknown templates fall back to the default.
func (s *Store) CreateResume(ctx context.Context, userID string, r types.Resume) (*types.Resume, error) {
	now := time.Now().UTC()
	r.ID = uuid.NewString()
	r.UserID = userID
	r.SelectedTemplate = types.NormalizeTemplate(r.SelectedTemplate)
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Experiences == nil {
		r.Experiences = []types.Experience{}
	}
	if r.Education == nil {
		r.Education = []types.Education{}
	}
	if r.Skills == nil {
		r.Skills = []types.Skill{}
	}

	personalJSON, experiencesJSON, educationJSON, skillsJSON, err := marshalSections(r)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resumes (id, user_id, title, personal_info, experiences, education, skills, template, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Title, personalJSON, experiencesJSON, educationJSON, skillsJSON,
		r.SelectedTemplate, now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting resume: %w", err)
	}

	return &r, nil
}

// GetResume returns the resume with the given ID, regardless of owner.
// Ownership checks belong to the caller.
func (s *Store) GetResume(ctx context.Context, id string) (*types.Resume, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, personal_info, experiences, education, skills, template, created_at, updated_at
		 FROM resumes WHERE id = ?`, id)
	r, err := scanResume(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying resume: %w", err)
	}
	return r, nil
}

// ListResumes returns all resumes owned by userID, newest first.
func (s *Store) ListResumes(ctx context.Context, userID string) ([]types.Resume, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, personal_info, experiences, education, skills, template, created_at, updated_at
		 FROM resumes WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}

// ResumeUpdate holds the fields of a partial resume update; nil fields are
// left unchanged.
type ResumeUpdate struct {
	Title            *string
	PersonalInfo     *types.PersonalInfo
	Experiences      *[]types.Experience
	Education        *[]types.Education
	Skills           *[]types.Skill
	SelectedTemplate *string
}

// UpdateResume applies a partial update and returns the stored resume.
func (s *Store) UpdateResume(ctx context.Context, id string, upd ResumeUpdate) (*types.Resume, error) {
	r, err := s.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		r.Title = *upd.Title
	}
	if upd.PersonalInfo != nil {
		r.PersonalInfo = *upd.PersonalInfo
	}
	if upd.Experiences != nil {
		r.Experiences = *upd.Experiences
	}
	if upd.Education != nil {
		r.Education = *upd.Education
	}
	if upd.Skills != nil {
		r.Skills = *upd.Skills
	}
	if upd.SelectedTemplate != nil {
		r.SelectedTemplate = types.NormalizeTemplate(*upd.SelectedTemplate)
	}
	r.UpdatedAt = time.Now().UTC()

	personalJSON, experiencesJSON, educationJSON, skillsJSON, err := marshalSections(*r)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE resumes SET title = ?, personal_info = ?, experiences = ?, education = ?,
		 skills = ?, template = ?, updated_at = ? WHERE id = ?`,
		r.Title, personalJSON, experiencesJSON, educationJSON, skillsJSON,
		r.SelectedTemplate, r.UpdatedAt.Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating resume: %w", err)
	}

	return r, nil
}

// DeleteResume removes the resume with the given ID.
func (s *Store) DeleteResume(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting resume: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func marshalSections(r types.Resume) (personal, experiences, education, skills string, err error) {
	p, err := json.Marshal(r.PersonalInfo)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshaling personal info: %w", err)
	}
	e, err := json.Marshal(r.Experiences)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshaling experiences: %w", err)
	}
	ed, err := json.Marshal(r.Education)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshaling education: %w", err)
	}
	sk, err := json.Marshal(r.Skills)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshaling skills: %w", err)
	}
	return string(p), string(e), string(ed), string(sk), nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanResume(row scanner) (*types.Resume, error) {
	var (
		r                                                        types.Resume
		personalJSON, experiencesJSON, educationJSON, skillsJSON string
		createdAt, updatedAt                                     string
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &personalJSON, &experiencesJSON,
		&educationJSON, &skillsJSON, &r.SelectedTemplate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if err := fillResume(&r, personalJSON, experiencesJSON, educationJSON, skillsJSON, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// fillResume decodes the JSON section columns and timestamps into r.
func fillResume(r *types.Resume, personalJSON, experiencesJSON, educationJSON, skillsJSON, createdAt, updatedAt string) error {
	if err := json.Unmarshal([]byte(personalJSON), &r.PersonalInfo); err != nil {
		return fmt.Errorf("unmarshaling personal info: %w", err)
	}
	if err := json.Unmarshal([]byte(experiencesJSON), &r.Experiences); err != nil {
		return fmt.Errorf("unmarshaling experiences: %w", err)
	}
	if err := json.Unmarshal([]byte(educationJSON), &r.Education); err != nil {
		return fmt.Errorf("unmarshaling education: %w", err)
	}
	if err := json.Unmarshal([]byte(skillsJSON), &r.Skills); err != nil {
		return fmt.Errorf("unmarshaling skills: %w", err)
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return nil
}
