package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/lorenz/internal/lorenz"
)

// Formats lists the encodings Write accepts.
var Formats = []string{"csv", "json", "svg"}

// Metadata describes how a trajectory was produced.
type Metadata struct {
	Solver   string        `json:"solver"`
	Dt       float64       `json:"dt"`
	Duration float64       `json:"duration"`
	Initial  lorenz.State  `json:"initial"`
	Params   lorenz.Params `json:"params"`
}

type ExportData struct {
	Metadata
	Steps int         `json:"steps"`
	Times []float64   `json:"times"`
	X     []jsonFloat `json:"x"`
	Y     []jsonFloat `json:"y"`
	Z     []jsonFloat `json:"z"`
}

// jsonFloat encodes non-finite values as null, which encoding/json would
// otherwise reject.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func toJSON(axis []float64) []jsonFloat {
	out := make([]jsonFloat, len(axis))
	for i, v := range axis {
		out[i] = jsonFloat(v)
	}
	return out
}

// Write encodes tr to w in the named format.
func Write(w io.Writer, format string, meta Metadata, tr *lorenz.Trajectory) error {
	switch format {
	case "csv":
		return WriteCSV(w, tr)
	case "json":
		return WriteJSON(w, meta, tr)
	case "svg":
		return WriteSVG(w, tr, DefaultSVGOptions())
	default:
		return fmt.Errorf("export: unknown format %q (want one of %v)", format, Formats)
	}
}

// WriteJSON writes the metadata and dimension-major samples as one
// indented document.
func WriteJSON(w io.Writer, meta Metadata, tr *lorenz.Trajectory) error {
	data := ExportData{
		Metadata: meta,
		Steps:    tr.Len(),
		Times:    tr.Times,
		X:        toJSON(tr.X()),
		Y:        toJSON(tr.Y()),
		Z:        toJSON(tr.Z()),
	}
	if data.Times == nil {
		data.Times = []float64{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes a t,x,y,z header followed by one row per sample.
func WriteCSV(w io.Writer, tr *lorenz.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "x", "y", "z"}); err != nil {
		return err
	}

	row := make([]string, 4)
	for i := 0; i < tr.Len(); i++ {
		row[0] = strconv.FormatFloat(tr.Times[i], 'f', -1, 64)
		for d := 0; d < 3; d++ {
			row[d+1] = strconv.FormatFloat(tr.Axes[d][i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
