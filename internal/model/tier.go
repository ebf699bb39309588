package model

import (
	"fmt"
	"strings"
)

// Tier identifies a certificate class.
type Tier string

const (
	TierSilver    Tier = "silver"
	TierGold      Tier = "gold"
	TierPlatinum  Tier = "platinum"
	TierSignature Tier = "signature"
)

// Tiers returns all tiers in ascending order of class.
func Tiers() []Tier {
	return []Tier{TierSilver, TierGold, TierPlatinum, TierSignature}
}

// ParseTier normalizes and validates a tier name from external input.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case TierSilver, TierGold, TierPlatinum, TierSignature:
		return t, nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}
