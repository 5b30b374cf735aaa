package mathgen_test

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwalsh/recall/internal/mathgen"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestSample_WithinDeclaredRanges(t *testing.T) {
	rng := testRand(1)

	for _, tmpl := range mathgen.All() {
		for i := 0; i < 50; i++ {
			params := mathgen.Sample(tmpl, rng)
			require.Len(t, params, len(tmpl.Params))
			for _, p := range tmpl.Params {
				v, ok := params[p.Name]
				require.True(t, ok, "%s missing %s", tmpl.Name, p.Name)
				assert.GreaterOrEqual(t, v, p.Min, "%s %s", tmpl.Name, p.Name)
				assert.LessOrEqual(t, v, p.Max, "%s %s", tmpl.Name, p.Name)
			}
		}
	}
}

func TestSample_CountsAreIntegers(t *testing.T) {
	rng := testRand(2)

	for _, name := range []string{"binomial_pmf", "compound_interest", "present_value"} {
		tmpl, err := mathgen.Lookup(name)
		require.NoError(t, err)

		for i := 0; i < 50; i++ {
			params := mathgen.Sample(tmpl, rng)
			for _, intName := range []string{"n", "k", "compounds_per_year", "years"} {
				if v, ok := params[intName]; ok {
					assert.Equal(t, math.Trunc(v), v, "%s %s", name, intName)
				}
			}
		}
	}
}

func TestSample_RatesGetTwoDecimals(t *testing.T) {
	rng := testRand(3)
	tmpl, err := mathgen.Lookup("binomial_pmf")
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		p := mathgen.Sample(tmpl, rng)["p"]
		assert.InDelta(t, p, math.Round(p*100)/100, 1e-9)
	}
}

func TestSample_MoneyLandsOnHundreds(t *testing.T) {
	rng := testRand(4)

	for _, tt := range []struct{ template, param string }{
		{"present_value", "fv"},
		{"future_value", "pv"},
		{"compound_interest", "principal"},
	} {
		tmpl, err := mathgen.Lookup(tt.template)
		require.NoError(t, err)

		for i := 0; i < 50; i++ {
			v := mathgen.Sample(tmpl, rng)[tt.param]
			assert.Zero(t, math.Mod(v, 100), "%s %s = %v", tt.template, tt.param, v)
		}
	}
}

func TestSample_ClampsKToN(t *testing.T) {
	rng := testRand(5)
	tmpl, err := mathgen.Lookup("binomial_pmf")
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		params := mathgen.Sample(tmpl, rng)
		assert.LessOrEqual(t, params["k"], params["n"])
	}
}

func TestSample_ProducesFreshValues(t *testing.T) {
	rng := testRand(6)
	tmpl, err := mathgen.Lookup("normal_cdf")
	require.NoError(t, err)

	seen := make(map[float64]bool)
	for i := 0; i < 20; i++ {
		seen[mathgen.Sample(tmpl, rng)["x"]] = true
	}
	assert.Greater(t, len(seen), 1)
}

// SystemRand is the source the server shares across request goroutines;
// concurrent sampling must not race (run with -race).
func TestSample_ConcurrentWithSystemRand(t *testing.T) {
	rng := mathgen.SystemRand()
	tmpl, err := mathgen.Lookup("binomial_pmf")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				params := mathgen.Sample(tmpl, rng)
				assert.LessOrEqual(t, params["k"], params["n"])
			}
		}()
	}
	wg.Wait()
}
