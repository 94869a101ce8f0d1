package dashboard

import (
	"sort"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// Aggregate groups rows by indicator state and averages each indicator.
// Geometry-only rows are ignored. Output is sorted by state name.
func Aggregate(rows []model.JoinedRecord) []model.StateAggregate {
	type acc struct {
		agg model.StateAggregate
		n   int
	}
	groups := make(map[string]*acc)
	for _, r := range rows {
		if r.Indicator == nil {
			continue
		}
		rec := r.Indicator
		a, ok := groups[rec.State]
		if !ok {
			a = &acc{agg: model.StateAggregate{State: rec.State, Region: r.Region}}
			groups[rec.State] = a
		}
		a.n++
		a.agg.Internet += rec.Internet
		a.agg.Literacy += rec.Literacy
		a.agg.HigherEducation += rec.HigherEducation
		a.agg.Income += rec.Income
	}

	out := make([]model.StateAggregate, 0, len(groups))
	for _, a := range groups {
		n := float64(a.n)
		a.agg.Years = a.n
		a.agg.Internet /= n
		a.agg.Literacy /= n
		a.agg.HigherEducation /= n
		a.agg.Income /= n
		out = append(out, a.agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

// FindExtremes returns the highest and lowest state per indicator. On equal
// means the alphabetically first state wins on both ends. Empty input
// yields nil.
func FindExtremes(aggs []model.StateAggregate) []model.Extreme {
	if len(aggs) == 0 {
		return nil
	}
	out := make([]model.Extreme, 0, len(Indicators))
	for _, ind := range Indicators {
		hi, lo := -1, -1
		for i, a := range aggs {
			v := ind.OfAggregate(a)
			if hi < 0 || v > ind.OfAggregate(aggs[hi]) || (v == ind.OfAggregate(aggs[hi]) && a.State < aggs[hi].State) {
				hi = i
			}
			if lo < 0 || v < ind.OfAggregate(aggs[lo]) || (v == ind.OfAggregate(aggs[lo]) && a.State < aggs[lo].State) {
				lo = i
			}
		}
		max, min := aggs[hi], aggs[lo]
		out = append(out, model.Extreme{
			Indicator: ind.Key,
			MaxState:  max.State,
			MaxValue:  ind.OfAggregate(max),
			MaxLabel:  max.State + " " + ind.Format(ind.OfAggregate(max)),
			MinState:  min.State,
			MinValue:  ind.OfAggregate(min),
			MinLabel:  min.State + " " + ind.Format(ind.OfAggregate(min)),
		})
	}
	return out
}

// Summarize returns the four headline metrics: the mean of the per-state
// means. With no states every metric is invalid and shows a placeholder.
func Summarize(aggs []model.StateAggregate) []model.Metric {
	out := make([]model.Metric, 0, len(Indicators))
	for _, ind := range Indicators {
		m := model.Metric{Key: ind.Key, Label: ind.Metric, Text: util.Placeholder}
		if len(aggs) > 0 {
			var sum float64
			for _, a := range aggs {
				sum += ind.OfAggregate(a)
			}
			m.Value = sum / float64(len(aggs))
			m.Text = ind.Format(m.Value)
			m.Valid = true
		}
		out = append(out, m)
	}
	return out
}
