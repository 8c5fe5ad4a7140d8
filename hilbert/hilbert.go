// Package hilbert implements discrete many-body Hilbert spaces and their basis enumeration.
//
// A space is a product of identical local spaces, one per lattice site.
// Local quantum numbers follow the convention that spin projections are
// measured in units of hbar/2, so a spin-1/2 site takes values -1 and 1.
package hilbert

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/combin"
)

// Space is a discrete Hilbert space of a fixed number of sites,
// each site taking values from the same finite set of local states.
//
// Spaces are immutable after construction.
// RandomVals draws from the caller supplied generator only,
// so access to a shared generator must be serialized by the caller.
type Space interface {
	// Size returns the number of sites.
	Size() int
	// LocalSize returns the number of local states of a single site.
	LocalSize() int
	// LocalStates returns the local states in digit order.
	LocalStates() []float64
	// IsDiscrete reports whether the space has finitely many local states.
	IsDiscrete() bool
	// RandomVals fills dst with a random configuration.
	RandomVals(dst []float64, rng *rand.Rand)
}

// space holds the data common to all discrete spaces.
type space struct {
	size  int
	local []float64
}

func newSpace(size int, local []float64) (space, error) {
	if size < 1 {
		return space{}, errors.Errorf("%d sites", size)
	}
	if len(local) == 0 {
		return space{}, errors.Errorf("no local states")
	}
	for i, v := range local {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return space{}, errors.Errorf("local state %d is %f", i, v)
		}
	}
	for i, v := range local {
		if slices.Index(local, v) != i {
			return space{}, errors.Errorf("duplicate local state %f", v)
		}
	}
	return space{size: size, local: local}, nil
}

func (sp space) Size() int              { return sp.size }
func (sp space) LocalSize() int         { return len(sp.local) }
func (sp space) LocalStates() []float64 { return sp.local }
func (sp space) IsDiscrete() bool       { return true }

func (sp space) RandomVals(dst []float64, rng *rand.Rand) {
	for i := range dst {
		dst[i] = sp.local[rng.IntN(len(sp.local))]
	}
}

// Spin is a space of spin-s sites with local states [-2s, -2s+2, ..., 2s].
type Spin struct {
	space
	s float64

	// totalSz constrains configurations to sum to 2*totalSz.
	totalSz    float64
	hasTotalSz bool
}

// NewSpin creates a spin-s space of the given number of sites.
// s must be a positive half-integer.
func NewSpin(size int, s float64) (*Spin, error) {
	twoS := 2 * s
	if s <= 0 || twoS != math.Trunc(twoS) {
		return nil, errors.Errorf("s %f", s)
	}

	local := make([]float64, int(twoS)+1)
	for m := range local {
		local[m] = -twoS + 2*float64(m)
	}
	sp, err := newSpace(size, local)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	return &Spin{space: sp, s: s}, nil
}

// NewSpinTotalSz creates a spin-s space whose configurations are constrained
// to a fixed total z-projection totalSz.
func NewSpinTotalSz(size int, s, totalSz float64) (*Spin, error) {
	spin, err := NewSpin(size, s)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	twoSz := 2 * totalSz
	if twoSz != math.Trunc(twoSz) {
		return nil, errors.Errorf("totalSz %f", totalSz)
	}
	spin.totalSz = totalSz
	spin.hasTotalSz = true

	dim, err := spin.Dim()
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if dim == 0 {
		return nil, errors.Errorf("no configuration of %d spin-%v sites has total Sz %f", size, s, totalSz)
	}
	return spin, nil
}

// S returns the spin quantum number.
func (sp *Spin) S() float64 { return sp.s }

// TotalSz returns the total z-projection constraint, if one is set.
func (sp *Spin) TotalSz() (float64, bool) { return sp.totalSz, sp.hasTotalSz }

// Dim returns the number of configurations satisfying the total Sz constraint,
// or the full state count when unconstrained.
func (sp *Spin) Dim() (int, error) {
	if !sp.hasTotalSz {
		return checkedPow(len(sp.local), sp.size)
	}
	if sp.s == 0.5 {
		// nUp - nDown = 2*totalSz and nUp + nDown = size.
		target := int(2 * sp.totalSz)
		nUp := (sp.size + target) / 2
		if (sp.size+target)%2 != 0 || nUp < 0 || nUp > sp.size {
			return 0, nil
		}
		return combin.Binomial(sp.size, nUp), nil
	}
	return countFixedSum(sp.local, sp.size, 2*sp.totalSz)
}

func (sp *Spin) RandomVals(dst []float64, rng *rand.Rand) {
	sp.space.RandomVals(dst, rng)
	if !sp.hasTotalSz {
		return
	}

	// Random walk towards the constrained total.
	var sum float64
	for _, v := range dst {
		sum += v
	}
	target := 2 * sp.totalSz
	twoS := 2 * sp.s
	for sum != target {
		i := rng.IntN(len(dst))
		switch {
		case sum < target && dst[i] < twoS:
			dst[i] += 2
			sum += 2
		case sum > target && dst[i] > -twoS:
			dst[i] -= 2
			sum -= 2
		}
	}
}

// Qubit is a space of two-level sites with local states 0 and 1.
type Qubit struct {
	space
}

func NewQubit(size int) (*Qubit, error) {
	sp, err := newSpace(size, []float64{0, 1})
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return &Qubit{space: sp}, nil
}

// Boson is a space of bosonic sites with occupations 0 through nMax.
type Boson struct {
	space
	nMax int

	// nBosons constrains configurations to a fixed total occupation.
	nBosons    int
	hasNBosons bool
}

// NewBoson creates a bosonic space with at most nMax particles per site.
func NewBoson(size, nMax int) (*Boson, error) {
	if nMax < 1 {
		return nil, errors.Errorf("nMax %d", nMax)
	}
	local := make([]float64, nMax+1)
	for n := range local {
		local[n] = float64(n)
	}
	sp, err := newSpace(size, local)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return &Boson{space: sp, nMax: nMax}, nil
}

// NewBosonTotalNumber creates a bosonic space constrained to a fixed total
// number of particles.
func NewBosonTotalNumber(size, nMax, nBosons int) (*Boson, error) {
	boson, err := NewBoson(size, nMax)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if nBosons < 0 || nBosons > size*nMax {
		return nil, errors.Errorf("%d bosons on %d sites with nMax %d", nBosons, size, nMax)
	}
	boson.nBosons = nBosons
	boson.hasNBosons = true
	return boson, nil
}

// NMax returns the maximum occupation of a single site.
func (sp *Boson) NMax() int { return sp.nMax }

// NBosons returns the total particle number constraint, if one is set.
func (sp *Boson) NBosons() (int, bool) { return sp.nBosons, sp.hasNBosons }

// Dim returns the number of configurations satisfying the total number
// constraint, or the full state count when unconstrained.
func (sp *Boson) Dim() (int, error) {
	if !sp.hasNBosons {
		return checkedPow(len(sp.local), sp.size)
	}
	return countFixedSum(sp.local, sp.size, float64(sp.nBosons))
}

func (sp *Boson) RandomVals(dst []float64, rng *rand.Rand) {
	if !sp.hasNBosons {
		sp.space.RandomVals(dst, rng)
		return
	}

	// Place the particles one at a time on random non-full sites.
	clear(dst)
	for placed := 0; placed < sp.nBosons; {
		i := rng.IntN(len(dst))
		if dst[i] < float64(sp.nMax) {
			dst[i]++
			placed++
		}
	}
}

// Custom is a space whose local states are given explicitly.
type Custom struct {
	space
}

// NewCustom creates a space of sites with the given local states.
// The states must be finite and distinct.
func NewCustom(size int, localStates []float64) (*Custom, error) {
	sp, err := newSpace(size, slices.Clone(localStates))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return &Custom{space: sp}, nil
}

// countFixedSum returns the number of length-size sequences of local states
// whose values sum to target.
// The local states must be integral, which holds for spin and boson spaces.
func countFixedSum(local []float64, size int, target float64) (int, error) {
	vals := make([]int, len(local))
	for i, v := range local {
		if v != math.Trunc(v) {
			return 0, errors.Errorf("non-integral local state %f", v)
		}
		vals[i] = int(v)
	}
	if target != math.Trunc(target) {
		return 0, nil
	}
	t := int(target)

	// Dynamic programming on the running sum.
	// Partial sums after any number of sites lie within [base, top].
	minV, maxV := slices.Min(vals), slices.Max(vals)
	base := min(0, size*minV)
	top := max(0, size*maxV)
	if t < size*minV || t > size*maxV {
		return 0, nil
	}

	// counts[s-base] is the number of partial configurations with running sum s.
	counts := make([]int, top-base+1)
	next := make([]int, top-base+1)
	counts[-base] = 1
	for site := 0; site < size; site++ {
		clear(next)
		for o, c := range counts {
			if c == 0 {
				continue
			}
			for _, v := range vals {
				if next[o+v] > MaxStates-c {
					return 0, errors.Wrapf(ErrTooManyStates, "%d sites of %d states", size, len(local))
				}
				next[o+v] += c
			}
		}
		counts, next = next, counts
	}
	return counts[t-base], nil
}
