package store

import (
	"encoding/json"
	"io"

	"github.com/san-kum/stardyn/internal/dynamo"
)

// ExportData is the JSON shape of one computed run: per-star arrays
// keyed by star name, mirroring the engine's output schema.
type ExportData struct {
	Method      string                `json:"method"`
	LTTE        bool                  `json:"ltte"`
	Times       []float64             `json:"times"`
	Bodies      map[string]BodyExport `json:"bodies"`
	EnergyDrift float64               `json:"energy_drift,omitempty"`
}

type BodyExport struct {
	Times []float64 `json:"times"`
	U     []float64 `json:"us"`
	V     []float64 `json:"vs"`
	W     []float64 `json:"ws"`
	VU    []float64 `json:"vus"`
	VV    []float64 `json:"vvs"`
	VW    []float64 `json:"vws"`
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, method string, ltteOn bool, res *dynamo.Result) error {
	data := ExportData{
		Method:      method,
		LTTE:        ltteOn,
		Times:       res.Times,
		Bodies:      make(map[string]BodyExport, len(res.Names)),
		EnergyDrift: res.EnergyDrift,
	}
	for ci, name := range res.Names {
		data.Bodies[name] = BodyExport{
			Times: res.BodyTimes[ci],
			U:     res.U[ci], V: res.V[ci], W: res.W[ci],
			VU: res.VU[ci], VV: res.VV[ci], VW: res.VW[ci],
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
