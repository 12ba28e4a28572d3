package report

// Risk counts the days breaching one preset threshold
type Risk struct {
	Days    int
	Of      int
	Percent float64
}

func newRisk(days, of int) Risk {
	return Risk{Days: days, Of: of, Percent: percent(days, of)}
}

// Assessment is the preset evaluation of an analysed period
type Assessment struct {
	Rain        Risk
	Humidity    *Risk
	Temperature *Risk
	Wind        *Risk
	Overall     string
}

// Overall assessment labels
const (
	OverallUnfavourable = "Desfavorável"
	OverallAttention    = "Requer Atenção"
	OverallFavourable   = "Favorável"
)

// Assess evaluates the preset thresholds against the analysis. Rain risk is
// measured over the days of the year in the daily table; the other risks over
// every observed day. The overall score is rain% plus humidity% and may exceed 100.
func Assess(a *Analysis, preset Preset) Assessment {
	var out Assessment

	rainy := 0
	for _, d := range a.Days {
		if d.Probability > preset.RainMax {
			rainy++
		}
	}
	out.Rain = newRisk(rainy, len(a.Days))

	if preset.HumidityMax != nil && a.HumidityColumn != "" {
		n := 0
		for _, d := range a.humidity {
			if d.Max > *preset.HumidityMax {
				n++
			}
		}
		r := newRisk(n, a.TotalDays)
		out.Humidity = &r
	}

	if preset.TempMin != nil && preset.TempMax != nil && a.TemperatureColumn != "" {
		n := 0
		for _, d := range a.temperature {
			if d.Mean < *preset.TempMin || d.Mean > *preset.TempMax {
				n++
			}
		}
		r := newRisk(n, a.TotalDays)
		out.Temperature = &r
	}

	if preset.WindMax != nil && a.WindColumn != "" {
		n := 0
		for _, d := range a.wind {
			if d.Max > *preset.WindMax {
				n++
			}
		}
		r := newRisk(n, a.TotalDays)
		out.Wind = &r
	}

	total := out.Rain.Percent
	if out.Humidity != nil {
		total += out.Humidity.Percent
	}
	switch {
	case total > 100:
		out.Overall = OverallUnfavourable
	case total > 40:
		out.Overall = OverallAttention
	default:
		out.Overall = OverallFavourable
	}
	return out
}
