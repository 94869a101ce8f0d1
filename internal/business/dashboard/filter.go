package dashboard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// IsAll reports whether a selector value means "no constraint".
func IsAll(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all", "todas", "todos":
		return true
	}
	return false
}

// ParseSelection builds a Selection from raw selector values.
func ParseSelection(region, year, state string) (model.Selection, error) {
	var sel model.Selection
	if !IsAll(region) {
		sel.Region = strings.TrimSpace(region)
	}
	if !IsAll(year) {
		y, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil || y <= 0 {
			return model.Selection{}, fmt.Errorf("invalid year %q", year)
		}
		sel.Year = y
	}
	if !IsAll(state) {
		sel.State = strings.TrimSpace(state)
	}
	return sel, nil
}

// Filter returns the rows that satisfy every constraint in sel. The input
// slice is not modified. Year and state constraints drop geometry-only rows.
func Filter(rows []model.JoinedRecord, sel model.Selection) []model.JoinedRecord {
	state := util.NormalizeStateName(sel.State)
	out := make([]model.JoinedRecord, 0, len(rows))
	for _, r := range rows {
		if sel.Region != "" && !strings.EqualFold(strings.TrimSpace(r.Region), sel.Region) {
			continue
		}
		if sel.Year != 0 && (r.Indicator == nil || r.Indicator.Year != sel.Year) {
			continue
		}
		if state != "" && (r.Indicator == nil || util.NormalizeStateName(r.Indicator.State) != state) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Options lists selector values: regions from the geometry side, years and
// states from the indicator side.
func Options(rows []model.JoinedRecord) model.FilterOptions {
	regions := map[string]bool{}
	years := map[int]bool{}
	states := map[string]bool{}
	for _, r := range rows {
		if r.Region != "" {
			regions[r.Region] = true
		}
		if r.Indicator != nil {
			years[r.Indicator.Year] = true
			states[r.Indicator.State] = true
		}
	}

	opts := model.FilterOptions{
		Regions: make([]string, 0, len(regions)),
		Years:   make([]int, 0, len(years)),
		States:  make([]string, 0, len(states)),
	}
	for r := range regions {
		opts.Regions = append(opts.Regions, r)
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	for s := range states {
		opts.States = append(opts.States, s)
	}
	sort.Strings(opts.Regions)
	sort.Ints(opts.Years)
	sort.Strings(opts.States)
	return opts
}

// AverageNote is the disclaimer shown when values average several years.
func AverageNote(minYear, maxYear int) string {
	return fmt.Sprintf("(média de %d a %d)", minYear, maxYear)
}

// titled appends the note to a title when it is set.
func titled(title, note string) string {
	if note == "" {
		return title
	}
	return title + " " + note
}
