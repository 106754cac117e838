package models

import "github.com/google/uuid"

type Profile struct {
	Base
	FullName         string `json:"full_name"`
	AvatarURL        string `json:"avatar_url,omitempty"`
	CurrentStreak    int    `gorm:"default:0" json:"current_streak"`
	MaxStreak        int    `gorm:"default:0" json:"max_streak"`
	TotalScore       int    `gorm:"default:0" json:"total_score"`
	CareerPath       string `json:"career_path,omitempty"`
	GithubURL        string `json:"github_url,omitempty"`
	LinkedinURL      string `json:"linkedin_url,omitempty"`
	LeetcodeURL      string `json:"leetcode_url,omitempty"`
	LeetcodeUsername string `json:"leetcode_username,omitempty"`
}

// NewProfile returns an empty profile for the given user id.
func NewProfile(userID uuid.UUID) Profile {
	return Profile{Base: Base{ID: userID}}
}
