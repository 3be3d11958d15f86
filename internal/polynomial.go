package internal

import "github.com/osuushi/bigon/projective"

// The closed-form reconstruction of a twisted polygon from its corner
// invariants uses the polynomials O(upper, lower) of Schwartz: a signed sum
// over the "odd admissible sequences" between the two bounds. A sequence is a
// run of disjoint blocks, each either a singleton {j} or a triple
// {j, j+1, j+2}, where every block starts at lower+2 or further, consecutive
// blocks are separated by a gap, and everything stays below upper.
// A sequence contributes (-1)^(#singletons) times the product of the
// coordinates it names, indices taken cyclically.

// AdmissibleSequences enumerates the odd admissible sequences between lower and
// upper (the empty sequence is not included). The count grows exponentially;
// ReconstructionPolynomial never materializes them.
func AdmissibleSequences(upper, lower int) [][][]int {
	if upper-lower <= 2 {
		return nil
	}
	if upper-lower == 4 {
		return [][][]int{{{lower + 2}}}
	}

	var seqs [][][]int
	// Start later
	seqs = append(seqs, AdmissibleSequences(upper, lower+2)...)

	// Start with a singleton
	singleton := []int{lower + 2}
	seqs = append(seqs, [][]int{singleton})
	for _, rest := range AdmissibleSequences(upper, lower+4) {
		seqs = append(seqs, append([][]int{singleton}, rest...))
	}

	// Start with a triple
	if upper-lower >= 6 {
		triple := []int{lower + 2, lower + 3, lower + 4}
		seqs = append(seqs, [][]int{triple})
		for _, rest := range AdmissibleSequences(upper, lower+6) {
			seqs = append(seqs, append([][]int{triple}, rest...))
		}
	}
	return seqs
}

// ReconstructionPolynomial evaluates O(upper, lower) at x in time linear in
// upper-lower. Writing F(lo) for the signed sum over all sequences (empty one
// included) with lower bound lo, the enumeration above gives
//
//	F(lo) = 1                                          if upper-lo <= 2
//	F(lo) = F(lo+2) - x[lo+2] F(lo+4)                  if upper-lo <= 5
//	F(lo) = F(lo+2) - x[lo+2] F(lo+4) + x[lo+2] x[lo+3] x[lo+4] F(lo+6)
//
// and O(upper, lower) = F(lower).
func ReconstructionPolynomial(upper, lower int, x []float64) float64 {
	if upper-lower <= 2 {
		return 1
	}
	n := len(x)
	at := func(j int) float64 { return x[projective.CircularIndex(j, n)] }

	// f[i] holds F(lower+i). The tail past upper is padded with the base
	// case so the recurrence can always look six steps ahead.
	f := make([]float64, upper-lower+7)
	for i := len(f) - 1; i >= 0; i-- {
		lo := lower + i
		if upper-lo <= 2 {
			f[i] = 1
			continue
		}
		f[i] = f[i+2] - at(lo+2)*f[i+4]
		if upper-lo >= 6 {
			f[i] += at(lo+2) * at(lo+3) * at(lo+4) * f[i+6]
		}
	}
	return f[0]
}
