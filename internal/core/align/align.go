// Package align computes a longest common subsequence alignment between two
// token sequences.
package align

// Pair is one matched position: A indexes the first sequence, B the second
type Pair struct {
	A int
	B int
}

// LCS returns the matched index pairs of a longest common subsequence of a
// and b, in increasing order of both coordinates.
//
// Backtracking starts at the bottom-right cell. On equal elements the pair is
// taken and both indexes step back. Otherwise the walk moves up only when the
// upper cell is strictly larger, else left.
func LCS[T comparable](a, b []T) []Pair {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return nil
	}

	// flat (n+1)*(m+1) table, row-major
	w := m + 1
	dp := make([]int, (n+1)*w)
	for i := 1; i <= n; i++ {
		row, prev := i*w, (i-1)*w
		for j := 1; j <= m; j++ {
			switch {
			case a[i-1] == b[j-1]:
				dp[row+j] = dp[prev+j-1] + 1
			case dp[prev+j] >= dp[row+j-1]:
				dp[row+j] = dp[prev+j]
			default:
				dp[row+j] = dp[row+j-1]
			}
		}
	}

	k := dp[n*w+m]
	if k == 0 {
		return nil
	}
	out := make([]Pair, k)
	i, j := n, m
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			k--
			out[k] = Pair{A: i - 1, B: j - 1}
			i--
			j--
		case dp[(i-1)*w+j] > dp[i*w+j-1]:
			i--
		default:
			j--
		}
	}
	return out
}
