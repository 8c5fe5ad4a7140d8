package hilbert

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// MaxStates is the largest state count an Index enumerates.
const MaxStates = 1 << 62

var (
	// ErrTooManyStates is returned when a state space is too large to enumerate.
	ErrTooManyStates = errors.New("state-space too large to enumerate")
	// ErrIndexOutOfRange is returned when a state number is outside [0, NStates).
	ErrIndexOutOfRange = errors.New("state number out of range")
	// ErrInvalidState is returned when a state does not belong to the space.
	ErrInvalidState = errors.New("state not in hilbert space")
)

// Index is a bijection between the basis states of a discrete space
// and the numbers 0 to NStates-1.
// Site 0 is the most significant digit of the state number.
//
// An Index is immutable and safe for concurrent use.
type Index struct {
	size    int
	local   []float64
	nStates int

	// digit maps a local state to its position in local.
	digit map[float64]int
}

// NewIndex creates the basis enumeration of sp.
func NewIndex(sp Space) (*Index, error) {
	if !sp.IsDiscrete() {
		return nil, errors.Errorf("space is not discrete")
	}
	in := &Index{size: sp.Size(), local: sp.LocalStates()}
	if in.size < 1 {
		return nil, errors.Errorf("%d sites", in.size)
	}
	if len(in.local) == 0 {
		return nil, errors.Errorf("no local states")
	}

	var err error
	in.nStates, err = checkedPow(len(in.local), in.size)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	in.digit = make(map[float64]int, len(in.local))
	for d, v := range in.local {
		in.digit[v] = d
	}
	return in, nil
}

// NStates returns the total number of basis states.
func (in *Index) NStates() int { return in.nStates }

// Size returns the number of sites.
func (in *Index) Size() int { return in.size }

// NumberToState returns the basis state numbered k.
func (in *Index) NumberToState(k int) ([]float64, error) {
	if k < 0 || k >= in.nStates {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "%d not in [0, %d)", k, in.nStates)
	}
	state := make([]float64, in.size)
	in.stateAt(state, k)
	return state, nil
}

// StateToNumber returns the number of the given basis state.
func (in *Index) StateToNumber(state []float64) (int, error) {
	if len(state) != in.size {
		return -1, errors.Wrapf(ErrInvalidState, "%d sites, expected %d", len(state), in.size)
	}
	k := 0
	for i, v := range state {
		d, ok := in.digit[v]
		if !ok {
			return -1, errors.Wrapf(ErrInvalidState, "site %d value %f", i, v)
		}
		k = k*len(in.local) + d
	}
	return k, nil
}

// RandomState returns a state whose sites are drawn uniformly from the local states.
func (in *Index) RandomState(rng *rand.Rand) []float64 {
	state := make([]float64, in.size)
	for i := range state {
		state[i] = in.local[rng.IntN(len(in.local))]
	}
	return state
}

// Walk calls fn for every state number in [0, NStates) from workers goroutines.
// Each worker owns the state buffer it passes to fn.
// Walk returns the first error encountered, or the context's error if cancelled.
func (in *Index) Walk(ctx context.Context, workers int, fn func(k int, state []float64) error) error {
	workers = max(workers, 1)
	chunk := (in.nStates + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		from := w * chunk
		to := min(from+chunk, in.nStates)
		if from >= to {
			break
		}
		g.Go(func() error {
			state := make([]float64, in.size)
			for k := from; k < to; k++ {
				if err := ctx.Err(); err != nil {
					return errors.Wrap(err, "")
				}
				in.stateAt(state, k)
				if err := fn(k, state); err != nil {
					return errors.Wrap(err, fmt.Sprintf("%d", k))
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// StateTensor reshapes a vector of basis amplitudes into a rank-Size tensor
// with one axis per site, in the form expected by matrix product state
// decompositions.
func (in *Index) StateTensor(amplitudes []complex64) (*tensor.Dense, error) {
	if len(amplitudes) != in.nStates {
		return nil, errors.Errorf("%d amplitudes, expected %d", len(amplitudes), in.nStates)
	}

	shape := make([]int, in.size)
	for i := range shape {
		shape[i] = len(in.local)
	}
	t := tensor.Zeros(shape...)

	// The mixed-radix digits of k are exactly the tensor coordinates.
	digits := make([]int, in.size)
	for k, v := range amplitudes {
		in.digitsAt(digits, k)
		t.SetAt(digits, v)
	}
	return t, nil
}

// stateAt writes the basis state numbered k into dst.
func (in *Index) stateAt(dst []float64, k int) {
	base := len(in.local)
	for i := in.size - 1; i >= 0; i-- {
		dst[i] = in.local[k%base]
		k /= base
	}
}

// digitsAt writes the mixed-radix digits of k into dst.
func (in *Index) digitsAt(dst []int, k int) {
	base := len(in.local)
	for i := in.size - 1; i >= 0; i-- {
		dst[i] = k % base
		k /= base
	}
}

// checkedPow returns base^exp, or ErrTooManyStates if the result exceeds MaxStates.
func checkedPow(base, exp int) (int, error) {
	n := 1
	for range exp {
		if n > MaxStates/base {
			return 0, errors.Wrapf(ErrTooManyStates, "%d^%d", base, exp)
		}
		n *= base
	}
	return n, nil
}
