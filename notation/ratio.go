package notation

import (
	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/util"
)

func reduce(num, den int) constants.Ratio {
	if den < 0 {
		num, den = -num, -den
	}
	g := util.GCD(num, den)
	if g == 0 {
		return constants.Ratio{Num: 0, Den: 1}
	}
	return constants.Ratio{Num: num / g, Den: den / g}
}

// limitDenominator finds the closest ratio to num/den whose denominator is at
// most maxDen, using continued fraction convergents.
func limitDenominator(num, den, maxDen int) constants.Ratio {
	r := reduce(num, den)
	if r.Den <= maxDen {
		return r
	}
	p0, q0, p1, q1 := 0, 1, 1, 0
	n, d := r.Num, r.Den
	for {
		a := util.FloorDiv(n, d)
		q2 := q0 + a*q1
		if q2 > maxDen {
			break
		}
		p0, q0, p1, q1 = p1, q1, p0+a*p1, q2
		n, d = d, n-a*d
	}
	k := (maxDen - q0) / q1
	b1 := constants.Ratio{Num: p0 + k*p1, Den: q0 + k*q1}
	b2 := constants.Ratio{Num: p1, Den: q1}

	// compare |b - num/den| without leaving integers
	dist := func(b constants.Ratio) int64 {
		return util.Abs(int64(b.Num)*int64(r.Den) - int64(r.Num)*int64(b.Den))
	}
	if dist(b2)*int64(b1.Den) <= dist(b1)*int64(b2.Den) {
		return reduce(b2.Num, b2.Den)
	}
	return reduce(b1.Num, b1.Den)
}
