package mathgen

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Topics covered by the catalog.
const (
	TopicProbability = "probability"
	TopicFinance     = "finance"
)

// catalog is the closed, ordered set of problem templates. Versioned by
// name: renaming an entry orphans its stored progress, so names are stable.
var catalog = []Template{
	{
		Name:    "poisson_pmf",
		Topic:   TopicProbability,
		Concept: "Poisson distribution - probability of exactly k events occurring",
		AsksFor: "P(X = k), the probability of exactly k events",
		Example: "A busy coffee shop serves an average of 12 customers per hour. What's the probability of serving exactly 8 customers in the next hour?",
		Hint:    "**Poisson PMF:** P(X = k) = e^(-λ) × λ^k / k!\n\nWhere λ (lambda) is the average rate and k is the exact count you want.",
		Params: []Param{
			{Name: "lambda", Min: 2, Max: 20},
			{Name: "k", Min: 0, Max: 15},
		},
		Tolerance: Tolerance{Kind: ToleranceRelative, Value: 0.01},
		compute: func(p map[string]float64) float64 {
			return distuv.Poisson{Lambda: p["lambda"]}.Prob(p["k"])
		},
	},
	{
		Name:    "poisson_cdf",
		Topic:   TopicProbability,
		Concept: "Poisson distribution - probability of k or fewer events",
		AsksFor: "P(X ≤ k), the probability of at most k events",
		Example: "A website receives an average of 15 visitors per minute. What's the probability of receiving 10 or fewer visitors in the next minute?",
		Hint:    "**Poisson CDF:** P(X ≤ k) = Σ P(X = i) for i = 0 to k\n\nSum the PMF from 0 to k: Σ e^(-λ) × λ^i / i!",
		Params: []Param{
			{Name: "lambda", Min: 3, Max: 20},
			{Name: "k", Min: 1, Max: 12},
		},
		Tolerance: Tolerance{Kind: ToleranceRelative, Value: 0.01},
		compute: func(p map[string]float64) float64 {
			return distuv.Poisson{Lambda: p["lambda"]}.CDF(p["k"])
		},
	},
	{
		Name:    "poisson_survival",
		Topic:   TopicProbability,
		Concept: "Poisson distribution - probability of more than k events",
		AsksFor: "P(X > k), the probability of more than k events",
		Example: "A call center receives an average of 18 calls per hour. What's the probability of receiving more than 20 calls in the next hour?",
		Hint:    "**Poisson Survival:** P(X > k) = 1 - P(X ≤ k)\n\nCalculate P(X ≤ k) first, then subtract from 1.",
		Params: []Param{
			{Name: "lambda", Min: 5, Max: 25},
			{Name: "k", Min: 3, Max: 15},
		},
		Tolerance: Tolerance{Kind: ToleranceRelative, Value: 0.01},
		compute: func(p map[string]float64) float64 {
			return distuv.Poisson{Lambda: p["lambda"]}.Survival(p["k"])
		},
	},
	{
		Name:    "binomial_pmf",
		Topic:   TopicProbability,
		Concept: "Binomial distribution - probability of exactly k successes in n trials",
		AsksFor: "P(X = k), the probability of exactly k successes",
		Example: "A basketball player has a 70% free throw success rate. If she takes 10 free throws, what's the probability she makes exactly 7?",
		Hint:    "**Binomial PMF:** P(X = k) = C(n,k) × p^k × (1-p)^(n-k)\n\nWhere C(n,k) = n! / (k! × (n-k)!)",
		Params: []Param{
			{Name: "n", Min: 5, Max: 20},
			{Name: "p", Min: 0.2, Max: 0.8},
			{Name: "k", Min: 1, Max: 15},
		},
		Tolerance: Tolerance{Kind: ToleranceRelative, Value: 0.01},
		compute: func(p map[string]float64) float64 {
			return distuv.Binomial{N: p["n"], P: p["p"]}.Prob(p["k"])
		},
	},
	{
		Name:    "binomial_cdf",
		Topic:   TopicProbability,
		Concept: "Binomial distribution - probability of k or fewer successes",
		AsksFor: "P(X ≤ k), the probability of at most k successes",
		Example: "A multiple choice test has 15 questions with 4 options each. If a student guesses randomly, what's the probability they get 5 or fewer correct?",
		Hint:    "**Binomial CDF:** P(X ≤ k) = Σ P(X = i) for i = 0 to k\n\nSum the binomial PMF from 0 to k.",
		Params: []Param{
			{Name: "n", Min: 8, Max: 25},
			{Name: "p", Min: 0.3, Max: 0.7},
			{Name: "k", Min: 2, Max: 18},
		},
		Tolerance: Tolerance{Kind: ToleranceRelative, Value: 0.01},
		compute: func(p map[string]float64) float64 {
			return distuv.Binomial{N: p["n"], P: p["p"]}.CDF(p["k"])
		},
	},
	{
		Name:    "normal_cdf",
		Topic:   TopicProbability,
		Concept: "Normal distribution - probability of a value being less than or equal to x",
		AsksFor: "P(X ≤ x), the probability of a value being at most x",
		Example: "Adult male heights are normally distributed with mean 175cm and standard deviation 10cm. What's the probability a randomly selected man is 180cm or shorter?",
		Hint:    "**Normal CDF:** First calculate z = (x - μ) / σ\n\nThen look up Φ(z) in a z-table, or use: Φ(z) ≈ 0.5 × (1 + erf(z/√2))",
		Params: []Param{
			{Name: "mu", Min: 50, Max: 150},
			{Name: "sigma", Min: 5, Max: 25},
			{Name: "x", Min: 30, Max: 180},
		},
		Tolerance: Tolerance{Kind: ToleranceRelative, Value: 0.01},
		compute: func(p map[string]float64) float64 {
			return distuv.Normal{Mu: p["mu"], Sigma: p["sigma"]}.CDF(p["x"])
		},
	},
	{
		Name:    "normal_zscore",
		Topic:   TopicProbability,
		Concept: "Z-score calculation - how many standard deviations from the mean",
		AsksFor: "The z-score (number of standard deviations from mean)",
		Example: "Exam scores have a mean of 72 and standard deviation of 8. What is the z-score for a student who scored 84?",
		Hint:    "**Z-score:** z = (x - μ) / σ\n\nSubtract the mean from the value, then divide by standard deviation.",
		Params: []Param{
			{Name: "mu", Min: 40, Max: 100},
			{Name: "sigma", Min: 5, Max: 20},
			{Name: "x", Min: 20, Max: 130},
		},
		Tolerance: Tolerance{Kind: ToleranceAbsolute, Value: 0.1},
		compute: func(p map[string]float64) float64 {
			return (p["x"] - p["mu"]) / p["sigma"]
		},
	},
	{
		Name:    "exponential_cdf",
		Topic:   TopicProbability,
		Concept: "Exponential distribution - probability of event occurring within time x",
		AsksFor: "P(X ≤ x), the probability of the event occurring within time x",
		Example: "Light bulbs fail at a rate of 2 per year on average. What's the probability a bulb fails within the first 6 months?",
		Hint:    "**Exponential CDF:** P(X ≤ x) = 1 - e^(-λx)\n\nWhere λ is the rate parameter (events per unit time).",
		Params: []Param{
			{Name: "lambda", Min: 0.5, Max: 5},
			{Name: "x", Min: 0.5, Max: 4},
		},
		Tolerance: Tolerance{Kind: ToleranceRelative, Value: 0.01},
		compute: func(p map[string]float64) float64 {
			return distuv.Exponential{Rate: p["lambda"]}.CDF(p["x"])
		},
	},
	{
		Name:    "exponential_survival",
		Topic:   TopicProbability,
		Concept: "Exponential distribution - probability of surviving beyond time x",
		AsksFor: "P(X > x), the probability of lasting longer than time x",
		Example: "A machine breaks down on average once every 4 hours. What's the probability it runs for more than 5 hours without breaking?",
		Hint:    "**Exponential Survival:** P(X > x) = e^(-λx)\n\nWhere λ is the rate (events per unit time). Note: if given mean time between events, λ = 1/mean.",
		Params: []Param{
			{Name: "lambda", Min: 0.2, Max: 3},
			{Name: "x", Min: 0.5, Max: 5},
		},
		Tolerance: Tolerance{Kind: ToleranceRelative, Value: 0.01},
		compute: func(p map[string]float64) float64 {
			return distuv.Exponential{Rate: p["lambda"]}.Survival(p["x"])
		},
	},
	{
		Name:    "present_value",
		Topic:   TopicFinance,
		Concept: "Present Value - what a future sum is worth today given a discount rate",
		AsksFor: "The present value (PV = FV / (1 + r)^n)",
		Example: "You will receive £50,000 in 10 years. If the discount rate is 6% per year, what is that payment worth today?",
		Hint:    "**Present Value:** PV = FV / (1 + r)^n\n\nDivide the future value by (1 + interest rate) raised to the number of periods.",
		Params: []Param{
			{Name: "fv", Min: 1000, Max: 100000},
			{Name: "r", Min: 0.03, Max: 0.12},
			{Name: "n", Min: 1, Max: 20},
		},
		Tolerance: Tolerance{Kind: ToleranceAbsolute, Value: 1.0},
		compute: func(p map[string]float64) float64 {
			return p["fv"] / math.Pow(1+p["r"], p["n"])
		},
	},
	{
		Name:    "future_value",
		Topic:   TopicFinance,
		Concept: "Future Value - what an investment today will be worth in the future",
		AsksFor: "The future value (FV = PV * (1 + r)^n)",
		Example: "You invest £10,000 today at 5% annual interest. What will it be worth in 15 years?",
		Hint:    "**Future Value:** FV = PV × (1 + r)^n\n\nMultiply the present value by (1 + interest rate) raised to the number of periods.",
		Params: []Param{
			{Name: "pv", Min: 500, Max: 50000},
			{Name: "r", Min: 0.02, Max: 0.10},
			{Name: "n", Min: 2, Max: 25},
		},
		Tolerance: Tolerance{Kind: ToleranceAbsolute, Value: 1.0},
		compute: func(p map[string]float64) float64 {
			return p["pv"] * math.Pow(1+p["r"], p["n"])
		},
	},
	{
		Name:    "compound_interest",
		Topic:   TopicFinance,
		Concept: "Compound Interest - final amount with periodic compounding",
		AsksFor: "The final amount A = P(1 + r/n)^(nt)",
		Example: "You deposit £5,000 in a savings account with 4% annual interest, compounded monthly. How much will you have after 8 years?",
		Hint:    "**Compound Interest:** A = P × (1 + r/n)^(n×t)\n\nWhere P = principal, r = annual rate, n = compounds per year, t = years.",
		Params: []Param{
			{Name: "principal", Min: 1000, Max: 50000},
			{Name: "rate", Min: 0.03, Max: 0.10},
			{Name: "compounds_per_year", Min: 1, Max: 12},
			{Name: "years", Min: 1, Max: 15},
		},
		Tolerance: Tolerance{Kind: ToleranceAbsolute, Value: 1.0},
		compute: func(p map[string]float64) float64 {
			n := p["compounds_per_year"]
			return p["principal"] * math.Pow(1+p["rate"]/n, n*p["years"])
		},
	},
}

var byName = func() map[string]Template {
	m := make(map[string]Template, len(catalog))
	for _, t := range catalog {
		m[t.Name] = t
	}
	return m
}()

// All returns every template in catalog order.
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the template with the given name, or ErrUnknownTemplate.
func Lookup(name string) (Template, error) {
	t, ok := byName[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

// ByTopic returns the templates for one topic, in catalog order.
func ByTopic(topic string) []Template {
	var out []Template
	for _, t := range catalog {
		if t.Topic == topic {
			out = append(out, t)
		}
	}
	return out
}

// Names returns the template names for a topic, or all names when topic is empty.
func Names(topic string) []string {
	var out []string
	for _, t := range catalog {
		if topic == "" || t.Topic == topic {
			out = append(out, t.Name)
		}
	}
	return out
}

// Topics returns the sorted set of topics present in the catalog.
func Topics() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range catalog {
		if !seen[t.Topic] {
			seen[t.Topic] = true
			out = append(out, t.Topic)
		}
	}
	sort.Strings(out)
	return out
}
