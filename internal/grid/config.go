package grid

import (
	"fmt"
	"math"
)

// Mode selects how the Assembler turns detected frames into tiles.
type Mode string

const (
	// ModeMargins infers frame width and margins per row from width groups.
	ModeMargins Mode = "margins"

	// ModeRecursive splits each row recursively and rebuilds a uniform grid
	// from the per-row frame counts using fixed margins.
	ModeRecursive Mode = "recursive"
)

// ParseMode parses a mode name. The empty string selects ModeMargins.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeMargins:
		return ModeMargins, nil
	case ModeRecursive:
		return ModeRecursive, nil
	}
	return "", fmt.Errorf("unknown mode: %s", s)
}

// HoughParams are the parameters passed to a LineDetector for one region.
type HoughParams struct {
	// MinLength is the minimum accepted segment length in pixels.
	MinLength float64 `json:"min_length"`

	// MaxGap is the largest gap in pixels bridged within one segment.
	MaxGap float64 `json:"max_gap"`

	// Rho is the distance resolution of the accumulator in pixels.
	Rho float64 `json:"rho"`

	// Theta is the angle resolution of the accumulator in radians.
	Theta float64 `json:"theta"`

	// Threshold is the minimum number of accumulator votes for a line.
	Threshold int `json:"threshold"`
}

// Config holds every threshold used by the grid inference.
//
// Config is passed by value to each component. The pixel-based thresholds
// assume the canonical 1920x1080 canvas; rescale the input image instead of
// these values.
type Config struct {
	// Mode selects the assembly strategy. Default: ModeMargins.
	Mode Mode `yaml:"mode" json:"mode"`

	// Rho, Theta and Votes are the Hough accumulator settings.
	// Defaults: 1px, π/180, 100 votes.
	Rho   float64 `yaml:"rho" json:"rho"`
	Theta float64 `yaml:"theta" json:"theta"`
	Votes int     `yaml:"votes" json:"votes"`

	// MinLengthDivisor and MaxGapDivisor derive the segment length and gap
	// limits from the region span (span/2 and span/10 by default).
	MinLengthDivisor float64 `yaml:"min_length_divisor" json:"min_length_divisor"`
	MaxGapDivisor    float64 `yaml:"max_gap_divisor" json:"max_gap_divisor"`

	// Dedup makes NormalizeLines return the deduplicated line list. The
	// default (false) returns every normalized line, near-duplicates included.
	Dedup bool `yaml:"dedup" json:"dedup"`

	// DedupTolerance is the distance in pixels under which two sorted lines
	// are considered duplicates. Default: 2.
	DedupTolerance int `yaml:"dedup_tolerance" json:"dedup_tolerance"`

	// MinRatio and MaxRatio bound width/height of frames within a row.
	// Defaults: 0.5 and 2.0.
	MinRatio float64 `yaml:"min_ratio" json:"min_ratio"`
	MaxRatio float64 `yaml:"max_ratio" json:"max_ratio"`

	// TopMinRatio and TopMaxRatio bound frames returned by FindFrames.
	// Defaults: 0.56 and 1.5.
	TopMinRatio float64 `yaml:"top_min_ratio" json:"top_min_ratio"`
	TopMaxRatio float64 `yaml:"top_max_ratio" json:"top_max_ratio"`

	// WidthTolerance is the relative tolerance of GroupByWidth. Default: 0.05.
	WidthTolerance float64 `yaml:"width_tolerance" json:"width_tolerance"`

	// SideLaneMinWidth is the average width a second width group must exceed
	// before a side margin is inferred. Default: 100.
	SideLaneMinWidth float64 `yaml:"side_lane_min_width" json:"side_lane_min_width"`

	// FrameMargin and SideMargin are the fixed margins of recursive mode.
	// Defaults: 10 and 250.
	FrameMargin int `yaml:"frame_margin" json:"frame_margin"`
	SideMargin  int `yaml:"side_margin" json:"side_margin"`
}

// DefaultConfig returns the configuration the thresholds were tuned with.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeMargins,
		Rho:              1,
		Theta:            math.Pi / 180,
		Votes:            100,
		MinLengthDivisor: 2,
		MaxGapDivisor:    10,
		Dedup:            false,
		DedupTolerance:   2,
		MinRatio:         0.5,
		MaxRatio:         2.0,
		TopMinRatio:      0.56,
		TopMaxRatio:      1.5,
		WidthTolerance:   0.05,
		SideLaneMinWidth: 100,
		FrameMargin:      10,
		SideMargin:       250,
	}
}

// Validate checks the values that would otherwise cause division by zero or
// an empty accumulator.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Rho <= 0 || c.Theta <= 0 {
		return fmt.Errorf("hough resolution must be positive (rho=%g, theta=%g)", c.Rho, c.Theta)
	}
	if c.MinLengthDivisor <= 0 || c.MaxGapDivisor <= 0 {
		return fmt.Errorf("length divisors must be positive")
	}
	if c.MinRatio > c.MaxRatio || c.TopMinRatio > c.TopMaxRatio {
		return fmt.Errorf("min ratio exceeds max ratio")
	}
	if c.WidthTolerance < 0 {
		return fmt.Errorf("width tolerance must not be negative")
	}
	return nil
}

// houghParams derives detector parameters for a region span.
func (c Config) houghParams(span int) HoughParams {
	return HoughParams{
		MinLength: float64(span) / c.MinLengthDivisor,
		MaxGap:    float64(span) / c.MaxGapDivisor,
		Rho:       c.Rho,
		Theta:     c.Theta,
		Threshold: c.Votes,
	}
}
