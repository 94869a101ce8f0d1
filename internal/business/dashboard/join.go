package dashboard

import (
	"sort"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// AliasSuggestion proposes an alias entry for two keys that differ only by
// accents.
type AliasSuggestion struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// JoinReport lists the states that did not meet across the two sources.
type JoinReport struct {
	Matched           int               `json:"matched"`
	MissingGeometry   []string          `json:"missingGeometry,omitempty"`   // indicator states dropped
	MissingIndicators []string          `json:"missingIndicators,omitempty"` // geometry-only rows
	DuplicateGeometry []string          `json:"duplicateGeometry,omitempty"` // keys with more than one boundary
	Suggestions       []AliasSuggestion `json:"suggestions,omitempty"`
}

// Clean reports whether every state matched on both sides.
func (r JoinReport) Clean() bool {
	return len(r.MissingGeometry) == 0 && len(r.MissingIndicators) == 0 && len(r.DuplicateGeometry) == 0
}

// Join left-joins indicator rows onto geometry rows by state key.
// A geometry with no indicator yields one row with a nil Indicator.
// Indicator rows for states without geometry are dropped and reported.
// Only the first geometry per key is joined; later ones are reported.
func Join(geoms []model.StateGeometry, records []model.IndicatorRecord, aliases util.AliasTable) ([]model.JoinedRecord, JoinReport) {
	byKey := make(map[string][]int)
	for i, r := range records {
		k := util.StateKey(r.State, aliases)
		byKey[k] = append(byKey[k], i)
	}

	var (
		out     []model.JoinedRecord
		report  JoinReport
		geoKeys = make(map[string]bool, len(geoms))
	)
	for _, g := range geoms {
		key := util.StateKey(g.Name, aliases)
		if geoKeys[key] {
			report.DuplicateGeometry = append(report.DuplicateGeometry, key)
			continue
		}
		geoKeys[key] = true

		idx := byKey[key]
		if len(idx) == 0 {
			report.MissingIndicators = append(report.MissingIndicators, key)
			out = append(out, model.JoinedRecord{Key: key, GeoName: g.Name, Region: g.Region, Geometry: g.Geometry})
			continue
		}
		report.Matched++
		for _, i := range idx {
			rec := records[i]
			out = append(out, model.JoinedRecord{
				Key:       key,
				GeoName:   g.Name,
				Region:    g.Region,
				Geometry:  g.Geometry,
				Indicator: &rec,
			})
		}
	}

	for key := range byKey {
		if !geoKeys[key] {
			report.MissingGeometry = append(report.MissingGeometry, key)
		}
	}
	sort.Strings(report.MissingGeometry)
	sort.Strings(report.MissingIndicators)
	sort.Strings(report.DuplicateGeometry)
	report.Suggestions = suggestAliases(report.MissingGeometry, report.MissingIndicators)
	return out, report
}

func suggestAliases(indicatorOnly, geometryOnly []string) []AliasSuggestion {
	folded := make(map[string]string, len(geometryOnly))
	for _, k := range geometryOnly {
		folded[util.FoldAccents(k)] = k
	}
	var out []AliasSuggestion
	for _, k := range indicatorOnly {
		if g, ok := folded[util.FoldAccents(k)]; ok {
			out = append(out, AliasSuggestion{From: k, To: g})
		}
	}
	return out
}
