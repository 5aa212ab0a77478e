package searcher

import "math"

type uct struct {
	c   float64
	lnN float64
}

// newUCT prepares the exploration term for the children of a node visited
// N times. A parent can briefly lag behind its children while a backup is in
// flight, so N below 1 counts as 1.
func newUCT(c float64, N int64) uct {
	if N < 1 {
		N = 1
	}
	return uct{c: c, lnN: math.Log(float64(N))}
}

// evaluate returns q/n + c*sqrt(ln(N)/n), or +Inf for an unvisited child.
func (u uct) evaluate(q float64, n int64) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	return q/float64(n) + u.c*math.Sqrt(u.lnN/float64(n))
}
