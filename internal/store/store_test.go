package store

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/san-kum/stardyn/internal/dynamo"
)

func sampleResult() *dynamo.Result {
	res := dynamo.NewResult([]string{"primary", "secondary"}, []float64{0, 0.5, 1})
	for ci := 0; ci < 2; ci++ {
		for ti := 0; ti < 3; ti++ {
			v := float64(ci+1) * (float64(ti) + 0.25)
			res.BodyTimes[ci][ti] = res.Times[ti] - 1e-4
			res.U[ci][ti] = v
			res.V[ci][ti] = -v
			res.W[ci][ti] = v * math.Pi
			res.VU[ci][ti] = v / 3
			res.VV[ci][ti] = v / 7
			res.VW[ci][ti] = -v / 11
		}
	}
	res.EnergyDrift = 3.5e-12
	return res
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	res := sampleResult()
	id, err := s.Save("demo", "rk45", true, res)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Label != "demo" || meta.Method != "rk45" || !meta.LTTE {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Samples != 3 || len(meta.Stars) != 2 {
		t.Errorf("shape metadata mismatch: %+v", meta)
	}
	if meta.EnergyDrift != 3.5e-12 {
		t.Errorf("energy drift not preserved: %g", meta.EnergyDrift)
	}

	loaded, err := s.LoadResult(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Names) != 2 || loaded.Names[0] != "primary" {
		t.Fatalf("names mismatch: %v", loaded.Names)
	}
	for ci := range res.Names {
		for ti := range res.Times {
			// Full-precision formatting makes the round trip exact.
			if loaded.Times[ti] != res.Times[ti] ||
				loaded.BodyTimes[ci][ti] != res.BodyTimes[ci][ti] ||
				loaded.U[ci][ti] != res.U[ci][ti] ||
				loaded.W[ci][ti] != res.W[ci][ti] ||
				loaded.VW[ci][ti] != res.VW[ci][ti] {
				t.Fatalf("star %d index %d: values changed across save/load", ci, ti)
			}
		}
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("empty store should list no runs, got %d", len(runs))
	}

	if _, err := s.Save("a", "keplerian", false, sampleResult()); err != nil {
		t.Fatal(err)
	}
	runs, err = s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Label != "a" {
		t.Fatalf("unexpected listing: %+v", runs)
	}
}

func TestListMissingBaseDir(t *testing.T) {
	s := New("/nonexistent/stardyn-test-base")
	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatal("missing base dir should list as empty")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, "bs", true, sampleResult()); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Method != "bs" || !data.LTTE {
		t.Errorf("header mismatch: %+v", data)
	}
	if len(data.Times) != 3 {
		t.Errorf("times length %d", len(data.Times))
	}
	body, ok := data.Bodies["secondary"]
	if !ok {
		t.Fatal("secondary missing from export")
	}
	if len(body.W) != 3 || body.W[1] != 2*1.25*math.Pi {
		t.Errorf("w array mismatch: %v", body.W)
	}
}
