package geo

import (
	"sort"
	"strings"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// Checksum fingerprints a boundary set independent of its order, so a
// seeded copy can be compared with the source it came from.
func Checksum(geoms []model.StateGeometry) (string, error) {
	parts := make([]string, 0, len(geoms))
	for _, g := range geoms {
		raw, err := geojson.Marshal(g.Geometry)
		if err != nil {
			return "", err
		}
		parts = append(parts, util.NormalizeStateName(g.Name)+"|"+string(raw))
	}
	sort.Strings(parts)
	return util.HashBytes([]byte(strings.Join(parts, "\n"))), nil
}
