package models

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// ProblemStatus is ordered by progress: Unsolved < Attempted < Solved.
type ProblemStatus string

const (
	StatusUnsolved  ProblemStatus = "Unsolved"
	StatusAttempted ProblemStatus = "Attempted"
	StatusSolved    ProblemStatus = "Solved"
)

func (s ProblemStatus) Rank() int {
	switch s {
	case StatusAttempted:
		return 1
	case StatusSolved:
		return 2
	}
	return 0
}

func (s ProblemStatus) Valid() bool {
	return s == StatusUnsolved || s == StatusAttempted || s == StatusSolved
}

// LeetCodeSection is the section synced problems are filed under.
const LeetCodeSection = "LeetCode"

type CodingProblem struct {
	Base
	UserID          uuid.UUID     `gorm:"type:uuid;index;not null" json:"user_id"`
	SectionName     string        `gorm:"index;not null" json:"section_name"`
	ProblemName     string        `gorm:"not null" json:"problem_name"`
	ProblemLink     string        `gorm:"index" json:"problem_link,omitempty"`
	Difficulty      Difficulty    `gorm:"default:Medium" json:"difficulty"`
	Status          ProblemStatus `gorm:"default:Unsolved" json:"status"`
	YoutubeSolution string        `json:"youtube_solution,omitempty"`
	ResourceURL     string        `json:"resource_url,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
}
