package main

import (
	"os"
	"path/filepath"
	"testing"
)

const data = `ANO|ESTADO|PERCENTUAL_COM_ACESSO_INTERNET|TAXA_ALFABETIZACAO|PERCENTUAL_COM_ENSINO_SUPERIOR|RENDA_MEDIA_DOMICILIAR
2018|Bahia|50,00|85,5|10,0|R$ 2.000,00
2018|Espírito Santo|70,00|93,0|15,0|R$ 3.100,00
`

func writeFixtures(t *testing.T, names ...string) {
	t.Helper()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	geoPath := filepath.Join(dir, "states.geojson")

	fc := `{"type":"FeatureCollection","features":[`
	for i, n := range names {
		if i > 0 {
			fc += ","
		}
		fc += `{"type":"Feature","properties":{"name_state":"` + n + `","name_region":"X"},` +
			`"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}`
	}
	fc += `]}`

	if err := os.WriteFile(dataPath, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(geoPath, []byte(fc), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATA_FILE", dataPath)
	t.Setenv("GEOMETRY_SOURCE", "file")
	t.Setenv("GEOMETRY_FILE", geoPath)
	t.Setenv("STATE_ALIASES", "")
	t.Setenv("LOG_LEVEL", "error")
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		geoms []string
		want  int
	}{
		{name: "clean", geoms: []string{"Bahia", "Espirito Santo"}, want: 0},
		{name: "duplicate boundary", geoms: []string{"Bahia", "Espirito Santo", "Espírito Santo"}, want: 1},
		{name: "missing boundary", geoms: []string{"Bahia"}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeFixtures(t, tt.geoms...)
			if got := run(); got != tt.want {
				t.Fatalf("run() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunReturnsOnLoadFailure(t *testing.T) {
	writeFixtures(t, "Bahia")
	t.Setenv("DATA_FILE", filepath.Join(t.TempDir(), "missing.csv"))
	if got := run(); got != 1 {
		t.Fatalf("run() = %d, want 1", got)
	}
}
