package types

import (
	"fmt"
	"strings"
)

// ViewMode selects which chart the dashboard renders. It is the only piece of
// per-session state and is passed explicitly through every render call.
type ViewMode string

const (
	ViewSignal      ViewMode = "signal"
	ViewImage       ViewMode = "image"
	ViewCorrelation ViewMode = "correlation"
)

// ParseViewMode accepts the view name or the legacy button ids ("signal-btn", "image-btn", "corr-btn").
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "signal", "signal-btn":
		return ViewSignal, nil
	case "image", "image-btn":
		return ViewImage, nil
	case "correlation", "corr", "corr-btn":
		return ViewCorrelation, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// OverlayMode selects separate subplots or a single overlaid plot for the signal view.
type OverlayMode string

const (
	OverlaySeparate OverlayMode = "separate"
	OverlayOverlay  OverlayMode = "overlay"
)

// ParseOverlayMode accepts "separate" or "overlay"; empty means separate.
func ParseOverlayMode(s string) (OverlayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "separate":
		return OverlaySeparate, nil
	case "overlay":
		return OverlayOverlay, nil
	}
	return "", fmt.Errorf("unknown overlay mode %q", s)
}

// MethodDefault selects the identity channel order in the dashboard.
const MethodDefault LinkageMethod = "default"
