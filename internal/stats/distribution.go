package stats

import (
	"math"
	"sort"

	"github.com/eventatlas/eventatlas/internal/model"
)

// analyzeDistribution computes the third and fourth standardized moments,
// classifies the distribution shape, and runs a one-sample
// Kolmogorov-Smirnov test against a normal distribution fitted to the sample
// mean and standard deviation. Fewer than three prices or zero variance make
// the whole block undefined.
func analyzeDistribution(prices []float64, opts Options) model.DistributionAnalysis {
	n := len(prices)
	if n < 3 {
		return model.DistributionAnalysis{}
	}

	m := mean(prices)
	var m2, m3, m4 float64
	for _, x := range prices {
		d := x - m
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= float64(n)
	m3 /= float64(n)
	m4 /= float64(n)

	if m2 == 0 {
		return model.DistributionAnalysis{}
	}

	skew := m3 / math.Pow(m2, 1.5)
	kurt := m4/(m2*m2) - 3 // excess form

	out := model.DistributionAnalysis{
		Skewness:      skew,
		Kurtosis:      kurt,
		Shape:         shapeOf(skew, opts.SkewThreshold),
		KurtosisShape: kurtosisShapeOf(kurt),
		Defined:       true,
	}

	d, p := ksTestNormal(prices, m, sampleStd(prices))
	out.KSStatistic = d
	out.KSPValue = p
	out.IsNormal = p > opts.Alpha
	if out.IsNormal {
		out.NormalityVerdict = "normal distribution (KS p > 0.05)"
	} else {
		out.NormalityVerdict = "non-normal distribution (KS p <= 0.05)"
	}
	return out
}

func shapeOf(skew, threshold float64) string {
	switch {
	case math.Abs(skew) < threshold:
		return "approximately symmetric"
	case skew > 0:
		return "right-skewed"
	default:
		return "left-skewed"
	}
}

func kurtosisShapeOf(kurt float64) string {
	switch {
	case math.Abs(kurt) < 1:
		return "mesokurtic"
	case kurt > 0:
		return "leptokurtic"
	default:
		return "platykurtic"
	}
}

// ksTestNormal runs the one-sample KS test of the data against
// Normal(mu, sigma) and returns the D statistic with its asymptotic p-value.
func ksTestNormal(xs []float64, mu, sigma float64) (dStat, pValue float64) {
	n := len(xs)
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	for i, x := range sorted {
		f := normalCDF((x - mu) / sigma)
		above := float64(i+1)/float64(n) - f
		below := f - float64(i)/float64(n)
		dStat = math.Max(dStat, math.Max(above, below))
	}

	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * dStat
	return dStat, kolmogorovQ(lambda)
}

func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// kolmogorovQ is the survival function of the Kolmogorov distribution,
// Q(lambda) = 2 * sum_{k>=1} (-1)^{k-1} exp(-2 k^2 lambda^2).
func kolmogorovQ(lambda float64) float64 {
	if lambda < 1e-9 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	p := 2 * sum
	return math.Min(1, math.Max(0, p))
}
