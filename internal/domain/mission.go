package domain

import "time"

// MissionKind distinguishes one-shot missions from multi-day streaks.
type MissionKind string

const (
	MissionRegular     MissionKind = "regular"
	MissionDailyStreak MissionKind = "daily_streak"
)

// Reward is the canonical typed reward. Legacy records stored the
// ticket amount under several field names; the store layer normalizes
// them into this struct at scan time so services never see variants.
type Reward struct {
	Tickets int `json:"tickets"`
}

// Mission is a mission definition. Regular missions grant Reward once
// on claim; daily-streak missions grant DayRewards[i] when day i+1 is
// claimed and complete implicitly with the final day.
type Mission struct {
	ID          int         `json:"id"`
	Kind        MissionKind `json:"kind"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Requirement string      `json:"requirement,omitempty"`
	Reward      Reward      `json:"reward"`
	DayRewards  []Reward    `json:"day_rewards,omitempty"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Days returns the streak length, zero for regular missions.
func (m Mission) Days() int {
	return len(m.DayRewards)
}

// MissionProgress tracks one user's progress on one mission.
//
// Invariants: ClaimedDays is an ordered subset of {1..N} with no
// duplicates; Completed flips exactly when the claimed-day set reaches
// N (streak) or the requirement is met (regular); Claimed can only be
// set after Completed.
type MissionProgress struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	MissionID      int        `json:"mission_id"`
	Progress       int        `json:"progress"` // 0-100
	Completed      bool       `json:"completed"`
	Claimed        bool       `json:"claimed"`
	ClaimedDays    []int      `json:"claimed_days,omitempty"`
	LastClaimAt    *time.Time `json:"last_claim_at,omitempty"`
	NextEligibleAt *time.Time `json:"next_eligible_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HasClaimedDay reports whether the given day is already claimed.
func (p MissionProgress) HasClaimedDay(day int) bool {
	for _, d := range p.ClaimedDays {
		if d == day {
			return true
		}
	}
	return false
}

// NextUnclaimedDay returns the smallest unclaimed day in [1,days].
// Days must be claimed strictly in order, so this is always
// len(ClaimedDays)+1 while the invariants hold.
func (p MissionProgress) NextUnclaimedDay(days int) int {
	for day := 1; day <= days; day++ {
		if !p.HasClaimedDay(day) {
			return day
		}
	}
	return 0
}
