// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the resume-server backend.
package types

import "time"

// User is an account that owns resumes. Password material never appears here;
// the store keeps the bcrypt hash internally.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// PersonalInfo is the contact block of a resume. All fields are optional.
type PersonalInfo struct {
	FullName            string `json:"fullName,omitempty" yaml:"full_name,omitempty"`
	Email               string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone               string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location            string `json:"location,omitempty" yaml:"location,omitempty"`
	ProfessionalSummary string `json:"professionalSummary,omitempty" yaml:"professional_summary,omitempty"`
}

// Experience is one employment entry.
type Experience struct {
	JobTitle         string `json:"jobTitle,omitempty" yaml:"job_title,omitempty"`
	Company          string `json:"company,omitempty" yaml:"company,omitempty"`
	StartDate        string `json:"startDate,omitempty" yaml:"start_date,omitempty"`
	EndDate          string `json:"endDate,omitempty" yaml:"end_date,omitempty"`
	CurrentlyWorking bool   `json:"currentlyWorking" yaml:"currently_working"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Education is one schooling entry.
type Education struct {
	School       string `json:"school,omitempty" yaml:"school,omitempty"`
	Degree       string `json:"degree,omitempty" yaml:"degree,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty" yaml:"field_of_study,omitempty"`
	StartDate    string `json:"startDate,omitempty" yaml:"start_date,omitempty"`
	EndDate      string `json:"endDate,omitempty" yaml:"end_date,omitempty"`
	Grade        string `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// Skill is a named skill with a proficiency level.
type Skill struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Level string `json:"level" yaml:"level"`
}

// DefaultTemplate is used when a requested template is unknown.
const DefaultTemplate = "classic"

// validTemplates lists the render templates the client supports.
var validTemplates = map[string]bool{
	"classic":   true,
	"modern":    true,
	"creative":  true,
	"minimal":   true,
	"ats":       true,
	"executive": true,
}

// NormalizeTemplate returns name if it is a known template, DefaultTemplate otherwise.
func NormalizeTemplate(name string) string {
	if validTemplates[name] {
		return name
	}
	return DefaultTemplate
}

// Resume is a stored resume document owned by a single user.
type Resume struct {
	ID               string       `json:"id" yaml:"id"`
	UserID           string       `json:"userId" yaml:"user_id"`
	Title            string       `json:"title" yaml:"title"`
	PersonalInfo     PersonalInfo `json:"personalInfo" yaml:"personal_info"`
	Experiences      []Experience `json:"experiences" yaml:"experiences"`
	Education        []Education  `json:"education" yaml:"education"`
	Skills           []Skill      `json:"skills" yaml:"skills"`
	SelectedTemplate string       `json:"selectedTemplate" yaml:"selected_template"`
	CreatedAt        time.Time    `json:"createdAt" yaml:"created_at"`
	UpdatedAt        time.Time    `json:"updatedAt" yaml:"updated_at"`
}
