package geo

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Bounds returns minX, minY, maxX, maxY over all geometries, or nil when
// none has coordinates.
func Bounds(geoms []geom.T) []float64 {
	var b *geom.Bounds
	for _, g := range geoms {
		if empty(g) {
			continue
		}
		if b == nil {
			b = geom.NewBounds(geom.XY)
		}
		b.Extend(g)
	}
	if b == nil {
		return nil
	}
	return []float64{b.Min(0), b.Min(1), b.Max(0), b.Max(1)}
}

// LabelPoint is where a state's label goes on the map.
func LabelPoint(g geom.T) (x, y float64, ok bool) {
	if empty(g) {
		return 0, 0, false
	}
	c, err := xy.Centroid(g)
	if err != nil || len(c) < 2 {
		return 0, 0, false
	}
	return c[0], c[1], true
}

// Rings flattens polygons and multipolygons into their outer rings.
func Rings(g geom.T) [][]geom.Coord {
	switch t := g.(type) {
	case *geom.Polygon:
		if t.NumLinearRings() == 0 {
			return nil
		}
		return [][]geom.Coord{t.LinearRing(0).Coords()}
	case *geom.MultiPolygon:
		var out [][]geom.Coord
		for i := 0; i < t.NumPolygons(); i++ {
			p := t.Polygon(i)
			if p.NumLinearRings() > 0 {
				out = append(out, p.LinearRing(0).Coords())
			}
		}
		return out
	}
	return nil
}

func empty(g geom.T) bool {
	if g == nil {
		return true
	}
	if gc, ok := g.(*geom.GeometryCollection); ok {
		return gc.Empty()
	}
	return len(g.FlatCoords()) == 0
}
