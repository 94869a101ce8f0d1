package util

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiSpacePattern matches multiple consecutive whitespace characters
var multiSpacePattern = regexp.MustCompile(`\s+`)

// AliasTable maps a normalized state name to the key it must join under.
// Both keys and values are stored normalized (see NormalizeStateName).
type AliasTable map[string]string

// DefaultStateAliases lists the known spelling differences between the
// indicator file and the geometry providers. Review it whenever either
// source changes.
var DefaultStateAliases = AliasTable{
	// IBGE boundary data spells the state without the accent.
	"ESPÍRITO SANTO": "ESPIRITO SANTO",
}

// NewAliasTable normalizes every entry of raw into a new table.
func NewAliasTable(raw map[string]string) AliasTable {
	t := make(AliasTable, len(raw))
	for from, to := range raw {
		t[NormalizeStateName(from)] = NormalizeStateName(to)
	}
	return t
}

// Merge returns a new table with other's entries laid over t's.
func (t AliasTable) Merge(other AliasTable) AliasTable {
	out := make(AliasTable, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[NormalizeStateName(k)] = NormalizeStateName(v)
	}
	return out
}

// Resolve returns the alias target for an already normalized name.
func (t AliasTable) Resolve(normalized string) string {
	if to, ok := t[normalized]; ok {
		return to
	}
	return normalized
}

// String renders the table as FROM=TO pairs sorted by FROM.
func (t AliasTable) String() string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+t[k])
	}
	return strings.Join(pairs, ";")
}

// ParseAliases reads "FROM=TO;FROM=TO" into an AliasTable.
func ParseAliases(s string) (AliasTable, error) {
	t := AliasTable{}
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		from, to, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return nil, fmt.Errorf("invalid alias %q: want FROM=TO", pair)
		}
		t[NormalizeStateName(from)] = NormalizeStateName(to)
	}
	return t, nil
}

// NormalizeStateName trims, collapses inner whitespace and upper-cases.
func NormalizeStateName(s string) string {
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.ToUpper(strings.TrimSpace(s))
}

// StateKey is the join key for a state name. It must be applied to both
// sides of a join.
func StateKey(name string, aliases AliasTable) string {
	return aliases.Resolve(NormalizeStateName(name))
}

// FoldAccents removes combining marks ("ESPÍRITO" -> "ESPIRITO").
// Used for diagnostics only; join keys keep their accents.
func FoldAccents(s string) string {
	// Chains carry state, so each call gets its own.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
