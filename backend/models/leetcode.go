package models

// ExternalProfileStats is the merged view of a LeetCode profile. Not persisted.
type ExternalProfileStats struct {
	Username       string  `json:"username"`
	Name           string  `json:"name"`
	Avatar         string  `json:"avatar"`
	Ranking        int     `json:"ranking"`
	Streak         int     `json:"streak"`
	TotalSolved    int     `json:"totalSolved"`
	TotalQuestions int     `json:"totalQuestions"`
	EasySolved     int     `json:"easySolved"`
	TotalEasy      int     `json:"totalEasy"`
	MediumSolved   int     `json:"mediumSolved"`
	TotalMedium    int     `json:"totalMedium"`
	HardSolved     int     `json:"hardSolved"`
	TotalHard      int     `json:"totalHard"`
	AcceptanceRate float64 `json:"acceptanceRate"`
}

// Submission is one entry of a provider's submission history.
type Submission struct {
	Title         string `json:"title"`
	TitleSlug     string `json:"titleSlug"`
	Timestamp     string `json:"timestamp"`
	StatusDisplay string `json:"statusDisplay"`
	Lang          string `json:"lang"`
}
