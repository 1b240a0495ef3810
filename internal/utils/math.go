package utils

import "math"

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampProbability bounds p to [0, 1], mapping NaN to 0
func ClampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return Clamp(p, 0, 1)
}

// Binomial returns n choose k as a float64
func Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := 1; i <= k; i++ {
		result = result * float64(n-k+i) / float64(i)
	}
	return result
}

// BinomialProbability returns P(X = k) for X ~ Binomial(n, 0.5)
func BinomialProbability(n, k int) float64 {
	return Binomial(n, k) / math.Pow(2, float64(n))
}
