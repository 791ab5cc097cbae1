package postgres

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lootvault/lootvault/internal/domain"
)

// Older mission rows stored day rewards under several shapes: a bare
// number, {"tickets": n}, {"ticket_reward": n} or {"reward_tickets": n}.
// decodeDayRewards normalizes all of them into the canonical
// domain.Reward at the store boundary so services only ever see one
// shape. Unknown extra fields are rejected, not passed through.

type legacyReward struct {
	Tickets       *int `json:"tickets"`
	TicketReward  *int `json:"ticket_reward"`
	RewardTickets *int `json:"reward_tickets"`
}

func decodeDayRewards(raw []byte) ([]domain.Reward, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("failed to decode day rewards: %w", err)
	}

	rewards := make([]domain.Reward, 0, len(elems))
	for i, elem := range elems {
		reward, err := decodeReward(elem)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", i+1, err)
		}
		rewards = append(rewards, reward)
	}
	return rewards, nil
}

func decodeReward(raw json.RawMessage) (domain.Reward, error) {
	// Bare number form.
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return domain.Reward{Tickets: n}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var legacy legacyReward
	if err := dec.Decode(&legacy); err != nil {
		return domain.Reward{}, fmt.Errorf("unrecognized reward shape: %w", err)
	}

	switch {
	case legacy.Tickets != nil:
		return domain.Reward{Tickets: *legacy.Tickets}, nil
	case legacy.TicketReward != nil:
		return domain.Reward{Tickets: *legacy.TicketReward}, nil
	case legacy.RewardTickets != nil:
		return domain.Reward{Tickets: *legacy.RewardTickets}, nil
	}
	return domain.Reward{}, fmt.Errorf("reward has no ticket amount")
}
