package handler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ansa-dev/ansa/internal/clients/reputation"
)

// SpamCheckResult is the verdict on a phone number.
type SpamCheckResult struct {
	IsSpam     bool   `json:"is_spam"`
	IsValid    bool   `json:"is_valid"`
	LineType   string `json:"line_type"`
	Carrier    string `json:"carrier"`
	Country    string `json:"country"`
	SpamReason string `json:"spam_reason"`
}

// CheckSpam determines whether a phone number is likely a spam caller.
//
// The operation fails open: when the reputation service cannot be consulted
// (disabled, credential missing, network failure), the caller is treated as
// not spam. A false negative costs one nuisance call; a false positive
// blocks a legitimate caller.
func (h *Handler) CheckSpam(ctx context.Context, number string) *SpamCheckResult {
	if !h.cfg.SpamCheckEnabled {
		slog.Debug("spam check disabled, skipping lookup", "number", number)
		return &SpamCheckResult{
			IsSpam:     false,
			IsValid:    true,
			LineType:   "unknown",
			Carrier:    "unknown",
			Country:    "unknown",
			SpamReason: "spam_check_disabled",
		}
	}

	info, err := h.reputation.Lookup(ctx, number)
	if err != nil {
		slog.Warn("reputation lookup failed, treating caller as not spam", "number", number, "error", err)
		return &SpamCheckResult{
			IsSpam:     false,
			IsValid:    true,
			LineType:   "unknown",
			Carrier:    "unknown",
			Country:    "unknown",
			SpamReason: fmt.Sprintf("api_error: %v", err),
		}
	}

	return h.classify(info)
}

// classify applies the configured spam rules to a lookup result.
func (h *Handler) classify(info *reputation.LineInfo) *SpamCheckResult {
	result := &SpamCheckResult{
		IsValid:  info.Valid,
		LineType: orUnknown(info.LineType),
		Carrier:  orUnknown(info.Carrier),
		Country:  orUnknown(info.CountryName),
	}

	switch {
	case !info.Valid && h.cfg.FlagInvalid:
		result.IsSpam = true
		result.SpamReason = "invalid_number"
	case slices.Contains(h.cfg.SpamLineTypes, info.LineType):
		result.IsSpam = true
		result.SpamReason = fmt.Sprintf("%s_line_type_blocked", info.LineType)
	case slices.Contains(h.cfg.ReviewLineTypes, info.LineType):
		result.SpamReason = fmt.Sprintf("%s_number_flagged_for_review", info.LineType)
	}

	return result
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
