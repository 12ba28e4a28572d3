package report

import "strings"

// PresetNone is the "general analysis" choice that adds no preset section
const PresetNone = "Nenhum (Análise Geral)"

// Preset holds the thresholds of one kind of construction work.
// Nil thresholds do not apply to the preset.
type Preset struct {
	Name        string   `json:"name"`
	RainMax     float64  `json:"rain_max_pct"`
	HumidityMax *float64 `json:"humidity_max_pct,omitempty"`
	TempMin     *float64 `json:"temp_min_c,omitempty"`
	TempMax     *float64 `json:"temp_max_c,omitempty"`
	WindMax     *float64 `json:"wind_max_ms,omitempty"`
}

func limit(v float64) *float64 { return &v }

var presets = []Preset{
	{Name: "Fundações", RainMax: 25, HumidityMax: limit(95)},
	{Name: "Terraplanagem", RainMax: 30, HumidityMax: limit(95)},
	{Name: "Alvenaria", RainMax: 25, HumidityMax: limit(90)},
	{Name: "Concretagem", RainMax: 20, TempMin: limit(5), TempMax: limit(32)},
	{Name: "Cobertura/Telhado", RainMax: 10, WindMax: limit(12)},
	{Name: "Pintura Externa", RainMax: 15, HumidityMax: limit(85), WindMax: limit(8)},
}

// Presets returns the known presets in display order
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetNames lists the accepted preset names, including PresetNone
func PresetNames() []string {
	names := []string{PresetNone}
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}

// LookupPreset finds a preset by name; PresetNone and "" match nothing
func LookupPreset(name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// IsKnownPreset accepts the preset names, PresetNone, and the empty string
func IsKnownPreset(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || name == PresetNone || name == "Nenhum" {
		return true
	}
	_, ok := LookupPreset(name)
	return ok
}
