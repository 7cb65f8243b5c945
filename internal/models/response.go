// Package models holds the wire-level request and response shapes of the
// REST API.
package models

import "cheminot.railnav.org/internal/clock"

// ResponseModel is the envelope every API response is wrapped in.
type ResponseModel struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
	Data        any    `json:"data,omitempty"`
}

// ResponseCurrentTime returns the envelope timestamp for the given clock.
func ResponseCurrentTime(c clock.Clock) int64 {
	return c.NowUnixMilli()
}

// NewOKResponse wraps data in a 200 envelope.
func NewOKResponse(data any, c clock.Clock) ResponseModel {
	return ResponseModel{
		Code:        200,
		CurrentTime: ResponseCurrentTime(c),
		Text:        "OK",
		Version:     2,
		Data:        data,
	}
}
