package breaking

import "fmt"

const (
	// InfiniteRatio is the adjustment ratio reported when a line must stretch
	// or shrink but has no elasticity in that direction.
	InfiniteRatio = 1000

	// MaxRecoveryAttempts bounds consecutive empty-container recoveries from
	// one overflow before the search rolls back and accepts the overflow.
	MaxRecoveryAttempts = 5

	// DefaultRepeatedFlaggedDemerit is added when two consecutive breaks
	// happen at flagged penalties.
	DefaultRepeatedFlaggedDemerit = 50

	// DefaultIncompatibleFitnessDemerit is added when adjacent containers
	// differ by more than one fitness class.
	DefaultIncompatibleFitnessDemerit = 50

	// DefaultSplitFootnoteDemerits is added for a footnote split across containers.
	DefaultSplitFootnoteDemerits = 5000

	// DefaultDeferredFootnoteDemerits is added per footnote pushed whole to a
	// later container.
	DefaultDeferredFootnoteDemerits = 10000
)

// Fitness is the coarse class of how much a container was stretched or shrunk.
type Fitness int

const (
	VeryTight Fitness = iota
	Tight
	Loose
	VeryLoose
)

// ClassifyFitness maps an adjustment ratio to its fitness class:
// r < -0.5 is very tight, r <= 0.5 tight, r <= 1 loose, anything larger very loose.
func ClassifyFitness(r float64) Fitness {
	switch {
	case r < -0.5:
		return VeryTight
	case r <= 0.5:
		return Tight
	case r <= 1:
		return Loose
	}
	return VeryLoose
}

func (f Fitness) String() string {
	switch f {
	case VeryTight:
		return "very-tight"
	case Tight:
		return "tight"
	case Loose:
		return "loose"
	case VeryLoose:
		return "very-loose"
	}
	return fmt.Sprintf("Fitness(%d)", int(f))
}

// MarshalText encodes f by name.
func (f Fitness) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a fitness name produced by MarshalText.
func (f *Fitness) UnmarshalText(b []byte) error {
	for c := VeryTight; c <= VeryLoose; c++ {
		if c.String() == string(b) {
			*f = c
			return nil
		}
	}
	return fmt.Errorf("unknown fitness %q", b)
}

// AllowedBreaks filters which legal breaks the search considers.
type AllowedBreaks int

const (
	// AllBreaks considers every legal break.
	AllBreaks AllowedBreaks = iota
	// NoFlaggedPenalties skips flagged (hyphenation) penalties.
	NoFlaggedPenalties
	// OnlyForcedBreaks considers forced breaks only.
	OnlyForcedBreaks
)

// ParseAllowedBreaks converts a configuration string ("all", "no-flagged",
// "forced") to an AllowedBreaks value.
func ParseAllowedBreaks(s string) (AllowedBreaks, error) {
	switch s {
	case "", "all":
		return AllBreaks, nil
	case "no-flagged":
		return NoFlaggedPenalties, nil
	case "forced":
		return OnlyForcedBreaks, nil
	}
	return AllBreaks, fmt.Errorf("unknown allowed breaks %q (want all, no-flagged or forced)", s)
}

func (a AllowedBreaks) String() string {
	switch a {
	case AllBreaks:
		return "all"
	case NoFlaggedPenalties:
		return "no-flagged"
	case OnlyForcedBreaks:
		return "forced"
	}
	return fmt.Sprintf("AllowedBreaks(%d)", int(a))
}

// Alignment is the inline alignment of broken lines.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	AlignJustify
)

// ParseAlignment converts "start", "center", "end" or "justify" (also "left"
// and "right") into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "", "start", "left":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end", "right":
		return AlignEnd, nil
	case "justify":
		return AlignJustify, nil
	}
	return AlignStart, fmt.Errorf("unknown alignment %q", s)
}

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	case AlignJustify:
		return "justify"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// Params holds the demerit tuning shared by line and page breaking.
// Zero values select the defaults.
type Params struct {
	RepeatedFlaggedDemerit     float64
	IncompatibleFitnessDemerit float64
	// MaxFlaggedPenalties limits consecutive flagged breaks; 0 means no limit.
	MaxFlaggedPenalties int
}

func (p Params) withDefaults() Params {
	if p.RepeatedFlaggedDemerit == 0 {
		p.RepeatedFlaggedDemerit = DefaultRepeatedFlaggedDemerit
	}
	if p.IncompatibleFitnessDemerit == 0 {
		p.IncompatibleFitnessDemerit = DefaultIncompatibleFitnessDemerit
	}
	return p
}
