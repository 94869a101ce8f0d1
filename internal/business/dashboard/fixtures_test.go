package dashboard

import (
	"github.com/twpayne/go-geom"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
)

const sampleFile = `ANO|ESTADO|PERCENTUAL_COM_ACESSO_INTERNET|TAXA_ALFABETIZACAO|PERCENTUAL_COM_ENSINO_SUPERIOR|RENDA_MEDIA_DOMICILIAR
2018|Bahia|50,00|85,5|10,0|R$ 2.000,00
2019|Bahia|60,00|86,5|12,0|R$ 2.400,00
2018|Espírito Santo|70,00|93,0|15,0|R$ 3.100,00
2019|Espírito Santo|74,00|93,4|16,5|R$ 3.300,50
2018|São Paulo|80,00|96,0|22,0|R$ 4.500,00
2019|São Paulo|85,00|96,5|24,0|R$ 4.900,00
`

func square(x, y float64) geom.T {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
	}})
}

// sampleGeometry mimics the boundary source, which spells the state without
// the accent and carries one state absent from the indicator file.
func sampleGeometry() []model.StateGeometry {
	return []model.StateGeometry{
		{Name: "Bahia", Region: "Nordeste", Geometry: square(0, 0)},
		{Name: "Espirito Santo", Region: "Sudeste", Geometry: square(2, 0)},
		{Name: "São Paulo", Region: "Sudeste", Geometry: square(4, 0)},
		{Name: "Acre", Region: "Norte", Geometry: square(6, 0)},
	}
}

func sampleRecords() []model.IndicatorRecord {
	recs, err := ParseIndicators([]byte(sampleFile))
	if err != nil {
		panic(err)
	}
	return recs
}
