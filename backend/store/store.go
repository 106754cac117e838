// Package store is the table-oriented backend the dashboard reads and writes:
// profiles, daily goals, daily scores and coding problems.
package store

import "gorm.io/gorm"

// Store groups the per-table accessors over one connection.
type Store struct {
	Profiles *Profiles
	Goals    *Goals
	Scores   *Scores
	Problems *Problems
}

func New(db *gorm.DB) *Store {
	return &Store{
		Profiles: &Profiles{db: db},
		Goals:    &Goals{db: db},
		Scores:   &Scores{db: db},
		Problems: &Problems{db: db},
	}
}
