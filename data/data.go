// Package data generates and loads supervised training datasets.
//
// A samples file lists every basis state of an enumerated Hilbert space,
// one state per line with space separated site values, ordered by state number.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"nqs/hilbert"
)

// WriteSamples writes every basis state of in to a samples file.
func WriteSamples(path string, in *hilbert.Index) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "")
	}
	w := csv.NewWriter(f)
	w.Comma = ' '

	record := make([]string, in.Size())
	for k := 0; k < in.NStates(); k++ {
		state, err1 := in.NumberToState(k)
		if err1 != nil && err == nil {
			err = errors.Wrap(err1, "")
			break
		}
		for i, v := range state {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err1 := w.Write(record); err1 != nil && err == nil {
			err = errors.Wrap(err1, "")
			break
		}
	}

	w.Flush()
	if err1 := w.Error(); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}
	if err1 := f.Close(); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}
	return err
}

// ReadSamples parses a samples file, checking every state against in.
func ReadSamples(path string, in *hilbert.Index) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ' '
	states := make([][]float64, 0)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "")
		}

		state := make([]float64, 0, len(record))
		for j, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("%d %d %#v", len(states), j, record))
			}
			state = append(state, v)
		}
		if _, err := in.StateToNumber(state); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%d", len(states)))
		}

		states = append(states, state)
	}

	return states, nil
}
