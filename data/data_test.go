package data

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"nqs/hilbert"
)

func TestSamples(t *testing.T) {
	t.Parallel()
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer os.RemoveAll(dir)

	sp, err := hilbert.NewQubit(10)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	in, err := hilbert.NewIndex(sp)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	fpath := filepath.Join(dir, "ising1d_train_samples.txt")
	if err := WriteSamples(fpath, in); err != nil {
		t.Fatalf("%+v", err)
	}

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 1024 {
		t.Fatalf("%d lines, expected %d", len(lines), 1024)
	}
	if lines[0] != "0 0 0 0 0 0 0 0 0 0" {
		t.Fatalf("%q", lines[0])
	}
	if lines[5] != "0 0 0 0 0 0 0 1 0 1" {
		t.Fatalf("%q", lines[5])
	}
	if lines[1023] != "1 1 1 1 1 1 1 1 1 1" {
		t.Fatalf("%q", lines[1023])
	}

	// States read back in state number order.
	states, err := ReadSamples(fpath, in)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(states) != in.NStates() {
		t.Fatalf("%d, expected %d", len(states), in.NStates())
	}
	for k, state := range states {
		got, err := in.StateToNumber(state)
		if err != nil {
			t.Fatalf("%d %+v", k, err)
		}
		if got != k {
			t.Fatalf("%d, expected %d", got, k)
		}
	}
}

func TestSamplesCustom(t *testing.T) {
	t.Parallel()
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer os.RemoveAll(dir)

	sp, err := hilbert.NewCustom(5, []float64{-1232, 132, 0})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	in, err := hilbert.NewIndex(sp)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	fpath := filepath.Join(dir, "samples.txt")
	if err := WriteSamples(fpath, in); err != nil {
		t.Fatalf("%+v", err)
	}
	states, err := ReadSamples(fpath, in)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(states) != 243 {
		t.Fatalf("%d, expected %d", len(states), 243)
	}
	if !slices.Equal(states[0], []float64{-1232, -1232, -1232, -1232, -1232}) {
		t.Fatalf("%v", states[0])
	}
	if !slices.Equal(states[242], []float64{0, 0, 0, 0, 0}) {
		t.Fatalf("%v", states[242])
	}
}

func TestReadSamplesRejectsAlienStates(t *testing.T) {
	t.Parallel()
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer os.RemoveAll(dir)

	fpath := filepath.Join(dir, "samples.txt")
	if err := os.WriteFile(fpath, []byte("0 1\n0 2\n"), 0644); err != nil {
		t.Fatalf("%+v", err)
	}

	sp, err := hilbert.NewQubit(2)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	in, err := hilbert.NewIndex(sp)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if _, err := ReadSamples(fpath, in); err == nil {
		t.Fatalf("expected error")
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	m.Run()
}
