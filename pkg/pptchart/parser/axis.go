package parser

import (
	"math"

	"github.com/ukaji3/pptchart-go/pkg/pptchart/models"
)

// Order-of-magnitude bounds for the axis step.
const (
	minStepOrder = -2
	maxStepOrder = 4
)

// SuggestAxisDomain returns a display range covering values, snapped to a
// power-of-ten step. values must be non-empty and finite.
func SuggestAxisDomain(values []float64) (lower, upper float64) {
	dataMin, dataMax := values[0], values[0]
	for _, v := range values[1:] {
		dataMin = math.Min(dataMin, v)
		dataMax = math.Max(dataMax, v)
	}

	if dataMin == dataMax {
		if dataMin == 0 {
			return 0, 1
		}
		padding := math.Abs(dataMin) * 0.1
		return dataMin - padding, dataMax + padding
	}

	span := dataMax - dataMin
	order := int(math.Floor(math.Log10(span)))
	if span >= 10 {
		order--
	}
	order = max(min(order, maxStepOrder), minStepOrder)
	step := math.Pow(10, float64(order))

	lower = math.Floor(dataMin/step) * step
	upper = math.Ceil(dataMax/step) * step
	if dataMin >= 0 {
		lower = math.Max(0, lower)
	}
	if upper-lower < step {
		upper = lower + step
	}
	if upper-dataMax < 0.25*step {
		upper += step
	}
	return lower, upper
}

// ComputeAxisDomain returns the axis domain of a chart's numeric series
// values, or nil when the chart has none.
func ComputeAxisDomain(chart *models.ChartData) *models.AxisDomain {
	values := chart.NumericValues()
	if len(values) == 0 {
		return nil
	}
	lower, upper := SuggestAxisDomain(values)
	d := &models.AxisDomain{
		DataMin:      values[0],
		DataMax:      values[0],
		SuggestedMin: lower,
		SuggestedMax: upper,
	}
	for _, v := range values[1:] {
		d.DataMin = math.Min(d.DataMin, v)
		d.DataMax = math.Max(d.DataMax, v)
	}
	return d
}

// RoundDomain rounds every field of d to the given number of decimals.
func RoundDomain(d *models.AxisDomain, decimals int) *models.AxisDomain {
	if d == nil {
		return nil
	}
	scale := math.Pow(10, float64(decimals))
	round := func(f float64) float64 { return math.Round(f*scale) / scale }
	return &models.AxisDomain{
		DataMin:      round(d.DataMin),
		DataMax:      round(d.DataMax),
		SuggestedMin: round(d.SuggestedMin),
		SuggestedMax: round(d.SuggestedMax),
	}
}
