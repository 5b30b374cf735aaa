package mathgen

import "math"

// Rand is the randomness a sampler needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Sample draws fresh parameters for the template, independently and
// uniformly within each declared range. Called once per generation; results
// are never cached, so every presentation gets new numbers.
//
// Values are shaped to read naturally in a word problem: counts are
// integers, probabilities and rates get two decimals, money lands on a
// round hundred, everything else gets one decimal. For binomial templates
// k is clamped to n so the problem stays well-formed.
func Sample(t Template, rng Rand) map[string]float64 {
	params := make(map[string]float64, len(t.Params))
	for _, p := range t.Params {
		switch p.Name {
		case "n", "k", "compounds_per_year", "years":
			params[p.Name] = float64(int(p.Min) + rng.IntN(int(p.Max)-int(p.Min)+1))
		case "p", "rate", "r":
			params[p.Name] = roundTo(uniform(rng, p.Min, p.Max), 2)
		case "fv", "pv", "principal":
			params[p.Name] = math.Round(uniform(rng, p.Min, p.Max)/100) * 100
		default:
			params[p.Name] = roundTo(uniform(rng, p.Min, p.Max), 1)
		}
	}

	if k, ok := params["k"]; ok {
		if n, ok := params["n"]; ok && k > n {
			params["k"] = n
		}
	}
	return params
}

func uniform(rng Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
