package invigilation

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LoadSummary describes how evenly duties were spread over the roster
type LoadSummary struct {
	Faculty int     `yaml:"faculty"`
	Duties  int     `yaml:"duties"`
	Min     int     `yaml:"min"`
	Max     int     `yaml:"max"`
	Mean    float64 `yaml:"mean"`
	StdDev  float64 `yaml:"stdDev"`
}

// SummarizeLoad computes per-faculty duty load statistics over the whole
// roster, counting faculty with no duties as zero
func SummarizeLoad(state *DutyState) LoadSummary {
	if len(state.Roster) == 0 {
		return LoadSummary{}
	}

	loads := make([]float64, len(state.Roster))
	for i, faculty := range state.Roster {
		loads[i] = float64(state.Load[faculty.Key])
	}

	summary := LoadSummary{
		Faculty: len(loads),
		Duties:  int(floats.Sum(loads)),
		Min:     int(floats.Min(loads)),
		Max:     int(floats.Max(loads)),
	}
	if len(loads) < 2 {
		summary.Mean = loads[0]
		return summary
	}
	summary.Mean, summary.StdDev = stat.MeanStdDev(loads, nil)
	return summary
}
