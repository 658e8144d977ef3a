// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-server/pkg/types"
)

// ExportEntry pairs a resume with its owner for export output.
type ExportEntry struct {
	OwnerEmail string       `yaml:"owner_email"`
	Resume     types.Resume `yaml:"resume"`
}

// ExportYAML writes every stored resume, with its owner's email, to path as
// YAML. Intended for backups and offline inspection.
func (s *Store) ExportYAML(ctx context.Context, path string) (int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.title, r.personal_info, r.experiences, r.education,
		        r.skills, r.template, r.created_at, r.updated_at, u.email
		 FROM resumes r JOIN users u ON u.id = r.user_id
		 ORDER BY u.email, r.updated_at DESC`)
	if err != nil {
		return 0, fmt.Errorf("querying resumes for export: %w", err)
	}
	defer rows.Close()

	var entries []ExportEntry
	for rows.Next() {
		var (
			r                                        types.Resume
			personal, experiences, education, skills string
			createdAt, updatedAt, ownerEmail         string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &personal, &experiences,
			&education, &skills, &r.SelectedTemplate, &createdAt, &updatedAt, &ownerEmail); err != nil {
			return 0, fmt.Errorf("scanning export row: %w", err)
		}
		if err := fillResume(&r, personal, experiences, education, skills, createdAt, updatedAt); err != nil {
			return 0, err
		}
		entries = append(entries, ExportEntry{OwnerEmail: ownerEmail, Resume: r})
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating export rows: %w", err)
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return 0, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing export file: %w", err)
	}
	return len(entries), nil
}
