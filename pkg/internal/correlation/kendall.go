package correlation

import (
	"math"
	"sort"
)

// kendallRow caches the argsort of a row and its tie statistics so each pair
// only sorts within tie groups and merge-sorts once.
type kendallRow struct {
	order  []int    // indices sorted by value
	groups [][2]int // [start, end) runs of equal values in order, only runs longer than 1
	ties   int64    // sum of t(t-1)/2 over tie runs
}

func newKendallRow(x []float64) kendallRow {
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })

	r := kendallRow{order: order}
	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && x[order[end]] == x[order[start]] {
			end++
		}
		if t := int64(end - start); t > 1 {
			r.groups = append(r.groups, [2]int{start, end})
			r.ties += t * (t - 1) / 2
		}
		start = end
	}
	return r
}

// kendallTauB computes tau-b of x (described by xr) against y whose own tie
// count is yTies. Scratch buffers must have len(y) capacity.
func kendallTauB(xr kendallRow, y []float64, yTies int64, ys, tmp []float64) (float64, bool) {
	m := len(y)
	if m < 2 {
		return 0, false
	}
	ys = ys[:m]
	for k, idx := range xr.order {
		ys[k] = y[idx]
	}

	var joint int64
	for _, g := range xr.groups {
		seg := ys[g[0]:g[1]]
		sort.Float64s(seg)
		for s := 0; s < len(seg); {
			e := s + 1
			for e < len(seg) && seg[e] == seg[s] {
				e++
			}
			t := int64(e - s)
			joint += t * (t - 1) / 2
			s = e
		}
	}

	swaps := mergeCount(ys, tmp[:m])

	n0 := int64(m) * int64(m-1) / 2
	den := math.Sqrt(float64(n0-xr.ties) * float64(n0-yTies))
	if den == 0 {
		return 0, false
	}
	num := float64(n0 - xr.ties - yTies + joint - 2*swaps)
	return num / den, true
}

// mergeCount sorts a ascending and returns the number of strict inversions.
func mergeCount(a, tmp []float64) int64 {
	n := len(a)
	var swaps int64
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n-width; lo += 2 * width {
			mid := lo + width
			hi := mid + width
			if hi > n {
				hi = n
			}
			i, j, k := lo, mid, lo
			for i < mid && j < hi {
				if a[i] <= a[j] {
					tmp[k] = a[i]
					i++
				} else {
					tmp[k] = a[j]
					swaps += int64(mid - i)
					j++
				}
				k++
			}
			k += copy(tmp[k:], a[i:mid])
			copy(tmp[k:], a[j:hi])
			copy(a[lo:hi], tmp[lo:hi])
		}
	}
	return swaps
}

// Kendall returns tau-b of x and y, with ok=false when either is constant.
func Kendall(x, y []float64) (float64, bool) {
	xr := newKendallRow(x)
	yr := newKendallRow(y)
	r, ok := kendallTauB(xr, y, yr.ties, make([]float64, len(y)), make([]float64, len(y)))
	return clamp(r), ok
}
