package handler

import (
	"context"
	"log/slog"
)

// CallerInfoResult is the line information for a phone number.
type CallerInfoResult struct {
	Valid       bool   `json:"valid"`
	CountryName string `json:"country_name"`
	Location    string `json:"location"`
	Carrier     string `json:"carrier"`
	LineType    string `json:"line_type"`
}

// CallerInfo looks up line information for a phone number. A failed lookup
// yields an all-unknown result rather than an error; the conversation can
// proceed without it.
func (h *Handler) CallerInfo(ctx context.Context, number string) *CallerInfoResult {
	info, err := h.reputation.Lookup(ctx, number)
	if err != nil {
		slog.Warn("caller info lookup failed", "number", number, "error", err)
		return &CallerInfoResult{
			Valid:       false,
			CountryName: "unknown",
			Location:    "unknown",
			Carrier:     "unknown",
			LineType:    "unknown",
		}
	}

	return &CallerInfoResult{
		Valid:       info.Valid,
		CountryName: orUnknown(info.CountryName),
		Location:    orUnknown(info.Location),
		Carrier:     orUnknown(info.Carrier),
		LineType:    orUnknown(info.LineType),
	}
}
