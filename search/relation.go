package search

import "fmt"

// Relation is the ordinal position of an arm's estimate relative to muStar.
// There is deliberately no midpoint code: an arm either leans below or above.
type Relation int

const (
	// RelationUnknown is the zero value held by interior arms that were never
	// pulled. It is never produced by a bound test.
	RelationUnknown Relation = 0
	// RelationFarBelow: confidently below muStar.
	RelationFarBelow Relation = -2
	// RelationBelow: leaning below muStar, not yet separated.
	RelationBelow Relation = -1
	// RelationAbove: leaning above muStar, not yet separated.
	RelationAbove Relation = 1
	// RelationFarAbove: confidently above muStar.
	RelationFarAbove Relation = 2
)

func (r Relation) String() string {
	switch r {
	case RelationFarBelow:
		return "<<"
	case RelationBelow:
		return "<"
	case RelationAbove:
		return ">"
	case RelationFarAbove:
		return ">>"
	default:
		return "?"
	}
}

// ClassifyHoeffding places the empirical mean p relative to muStar using a
// symmetric confidence radius.
func ClassifyHoeffding(p, radius, muStar float64) Relation {
	switch {
	case p+radius < muStar:
		return RelationFarBelow
	case p-radius > muStar:
		return RelationFarAbove
	case p > muStar:
		return RelationAbove
	default:
		return RelationBelow
	}
}

// ClassifyKL places the empirical mean p relative to muStar using the KL
// divergence test: the side is decided by p, the confidence by whether
// d(p, muStar) reaches threshold.
func ClassifyKL(p, muStar, threshold float64) Relation {
	confident := KLDivergence(p, muStar) >= threshold
	if p > muStar {
		if confident {
			return RelationFarAbove
		}
		return RelationAbove
	}
	if confident {
		return RelationFarBelow
	}
	return RelationBelow
}

// Reading selects which of an arm's two relation codes a decision consumes.
// The controller alternates readings after every recorded answer.
type Reading int

const (
	// Pessimistic decisions read the bound that is slower to commit.
	Pessimistic Reading = iota
	// Optimistic decisions read the bound that commits earliest.
	Optimistic
)

func (r Reading) String() string {
	if r == Optimistic {
		return "optimistic"
	}
	return "pessimistic"
}

// Flip returns the other reading.
func (r Reading) Flip() Reading {
	if r == Optimistic {
		return Pessimistic
	}
	return Optimistic
}

// BoundFamily names one of the two relation codes stored per arm.
type BoundFamily string

const (
	// BoundHoeffding selects Arm.ByCI, the Hoeffding confidence interval code.
	BoundHoeffding BoundFamily = "ci"
	// BoundKL selects Arm.ByKL, the KL-divergence code.
	BoundKL BoundFamily = "kl"
)

// BoundPolicy maps each reading to the bound family it consumes.
type BoundPolicy struct {
	Optimistic  BoundFamily
	Pessimistic BoundFamily
}

// DefaultBoundPolicy reads KL codes optimistically and Hoeffding codes
// pessimistically.
func DefaultBoundPolicy() BoundPolicy {
	return BoundPolicy{Optimistic: BoundKL, Pessimistic: BoundHoeffding}
}

// SwappedBoundPolicy is the inverse pairing of DefaultBoundPolicy.
func SwappedBoundPolicy() BoundPolicy {
	return BoundPolicy{Optimistic: BoundHoeffding, Pessimistic: BoundKL}
}

// ValidBoundFamilies is the set of recognized bound family names.
var ValidBoundFamilies = map[BoundFamily]bool{BoundHoeffding: true, BoundKL: true}

// Validate returns an error if either reading names an unknown family.
func (p BoundPolicy) Validate() error {
	if !ValidBoundFamilies[p.Optimistic] {
		return fmt.Errorf("unknown optimistic bound family %q", p.Optimistic)
	}
	if !ValidBoundFamilies[p.Pessimistic] {
		return fmt.Errorf("unknown pessimistic bound family %q", p.Pessimistic)
	}
	return nil
}

// family returns the bound family consumed under reading r.
func (p BoundPolicy) family(r Reading) BoundFamily {
	if r == Optimistic {
		return p.Optimistic
	}
	return p.Pessimistic
}
