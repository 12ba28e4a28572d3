package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"weatherhistory.app/internal/core/consolidation"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const reportSuffix = "_relatorio_historico.txt"

var monthNames = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// ReportInput carries the run parameters printed in the report
type ReportInput struct {
	Location    string
	Preset      string
	GeneratedAt time.Time
}

// Generator writes the construction planning report next to the consolidated CSV
type Generator struct {
	logger ports.Logger
}

func NewGenerator(logger ports.Logger) *Generator {
	return &Generator{logger: logger}
}

// ReportPath derives the report file name from the CSV path
func ReportPath(csvPath string) string {
	return strings.TrimSuffix(csvPath, ".csv") + reportSuffix
}

// Generate analyses the dataset and writes the report, returning its path
func (g *Generator) Generate(dataset *consolidation.Dataset, csvPath string, input ReportInput) (string, error) {
	if dataset.Len() == 0 {
		return "", errors.NewNoDataError("no data to report on")
	}
	if input.GeneratedAt.IsZero() {
		input.GeneratedAt = time.Now()
	}

	analysis := Analyze(dataset)
	text := render(analysis, input)

	path := ReportPath(csvPath)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", errors.NewStorageError("failed to write report", err)
	}

	g.logger.Info("Report written",
		ports.F("path", path),
		ports.F("rain_column", analysis.RainColumn),
		ports.F("preset", input.Preset))
	return path, nil
}

type lines []string

func (l *lines) add(format string, args ...interface{}) {
	*l = append(*l, fmt.Sprintf(format, args...))
}

func (l *lines) rule(width int) {
	*l = append(*l, strings.Repeat("-", width))
}

func (l *lines) blank() {
	*l = append(*l, "")
}

func render(a *Analysis, input ReportInput) string {
	var out lines
	out.add("%s", strings.Repeat("=", 80))
	out.add("RELATÓRIO HISTÓRICO CLIMÁTICO PARA PLANEJAMENTO DE OBRAS")
	out.add("%s", strings.Repeat("=", 80))
	out.blank()
	out.add("IMPORTANTE: Este relatório apresenta análise de dados históricos")
	out.add("baseados em registros de anos anteriores. NÃO constitui previsão")
	out.add("meteorológica e deve ser usado apenas como referência para")
	out.add("planejamento de obras civis.")
	out.blank()
	out.add("Localização: %s", input.Location)
	out.add("Data de geração: %s", input.GeneratedAt.Format("02/01/2006 às 15:04"))
	out.blank()

	if a.RainColumn == "" {
		out.add("AVISO: Dados de precipitação não disponíveis.")
		out.add("Recomenda-se verificar configurações das APIs.")
		return strings.Join(out, "\n")
	}

	out.add("FONTE DE DADOS:")
	out.add("• Precipitação: %s", columnTitle(a.RainColumn))
	if a.HumidityColumn != "" {
		out.add("• Umidade: %s", columnTitle(a.HumidityColumn))
	} else {
		out.add("• Umidade: Não disponível")
	}
	out.blank()

	if !a.HasRain() {
		out.add("Dados insuficientes para análise.")
		return strings.Join(out, "\n")
	}

	renderSummary(&out, a)
	renderTemperatureAndWind(&out, a)
	if a.Seasonal() {
		renderSeasonal(&out, a)
	}
	renderDailyTable(&out, a)
	if preset, ok := LookupPreset(input.Preset); ok {
		renderPreset(&out, a, preset, input.Location)
	}
	renderFooter(&out)
	return strings.Join(out, "\n")
}

func renderSummary(out *lines, a *Analysis) {
	out.add("RESUMO EXECUTIVO PARA OBRAS:")
	out.rule(50)
	out.add("• Período analisado: %s", a.PeriodLabel())
	out.add("• Total de dias no histórico: %d (%d anos)", a.TotalDays, a.TotalYears)
	out.add("• Probabilidade geral de chuva: %.1f%%", a.RainProbability)
	out.add("• Dias com precipitação: %d", a.RainyDays)
	if a.HumidityColumn != "" {
		out.add("• Dias com umidade alta (≥90%%): %d", a.HighHumidityDays)
	}
	out.add("• Consistência entre anos: %.1f%%", a.Consistency)
	out.blank()

	peak := "N/A"
	if a.PeakMM > 0 {
		peak = a.PeakDay.Format("02/01/2006")
	}
	out.add("MÉTRICAS DE INTENSIDADE:")
	out.rule(35)
	out.add("• Volume médio (dias chuvosos): %.2f mm", a.MeanRainyMM)
	out.add("• Volume total acumulado: %.2f mm", a.TotalMM)
	out.add("• Pico histórico: %.2f mm em %s", a.PeakMM, peak)
	out.add("• Maior sequência de dias com chuva: %d dias", a.LongestWetRun)
	out.add("• Maior sequência de dias SEM chuva: %d dias (janela de oportunidade)", a.LongestDryRun)
	out.blank()
}

func renderTemperatureAndWind(out *lines, a *Analysis) {
	if !a.HasTemperature && !a.HasWind {
		return
	}
	out.add("ANÁLISE DE TEMPERATURA E VENTO:")
	out.rule(40)
	if a.HasTemperature {
		out.add("• Temperatura Média: %.1f°C (Min: %.1f°C, Max: %.1f°C)", a.MeanTempC, a.MinTempC, a.MaxTempC)
		out.add("• Dias com calor (> 30°C): %d dias", a.HotDays)
		out.add("• Dias com frio (< 10°C): %d dias", a.ColdDays)
	}
	if a.HasWind {
		out.add("• Velocidade Média do Vento: %.1f m/s", a.MeanWindMS)
	}
	out.blank()
}

func renderSeasonal(out *lines, a *Analysis) {
	out.add("ANÁLISE SAZONAL (PROBABILIDADE POR MÊS):")
	out.rule(45)
	for _, m := range a.Months {
		out.add("• %s: %.1f%% de chance de chuva (%s)", monthNames[m.Month-1], m.Probability, MonthStatus(m.Probability))
	}
	out.blank()
}

func renderDailyTable(out *lines, a *Analysis) {
	out.add("PROBABILIDADES DIÁRIAS PARA PLANEJAMENTO:")
	out.rule(55)
	out.add("Dia/Mês | Prob.%% | Anos | Recomendação para Obras")
	out.rule(55)
	for _, d := range a.Days {
		out.add("%6s | %5.1f | %4d | %s", d.Label(), d.Probability, d.Years, DayRecommendation(d.Probability))
	}
}

func renderPreset(out *lines, a *Analysis, preset Preset, location string) {
	name := strings.ToUpper(preset.Name)
	assessment := Assess(a, preset)

	out.blank()
	out.add("ANÁLISE ESPECÍFICA PARA: %s", name)
	out.rule(30 + len([]rune(preset.Name)))
	out.add("Para o período de %s em %s:", a.PeriodLabel(), location)
	out.blank()

	rain := assessment.Rain
	out.add("• RISCO DE CHUVA (Prob. > %g%%): %d de %d dias (%.1f%%)", preset.RainMax, rain.Days, rain.Of, rain.Percent)
	switch {
	case rain.Percent > 50:
		out.add("  - RECOMENDAÇÃO: Risco ALTO. Período desfavorável. Planeje proteções.")
	case rain.Percent > 20:
		out.add("  - RECOMENDAÇÃO: Risco MODERADO. Monitore a previsão do tempo.")
	default:
		out.add("  - RECOMENDAÇÃO: Risco BAIXO. Condições favoráveis.")
	}
	if r := assessment.Humidity; r != nil {
		out.add("• RISCO DE UMIDADE (Max > %g%%): %d de %d dias (%.1f%%)", *preset.HumidityMax, r.Days, r.Of, r.Percent)
	}
	if r := assessment.Temperature; r != nil {
		out.add("• RISCO DE TEMPERATURA (Fora de %g-%g°C): %d de %d dias (%.1f%%)", *preset.TempMin, *preset.TempMax, r.Days, r.Of, r.Percent)
	}
	if r := assessment.Wind; r != nil {
		out.add("• RISCO DE VENTO (Max > %g m/s): %d de %d dias (%.1f%%)", *preset.WindMax, r.Days, r.Of, r.Percent)
	}
	out.blank()
	out.add("AVALIAÇÃO GERAL PARA %s NESTE PERÍODO: %s", name, assessment.Overall)
}

func renderFooter(out *lines) {
	out.blank()
	out.add("RECOMENDAÇÕES POR TIPO DE OBRA:")
	out.rule(45)
	out.add("• CONCRETO: Evitar concretagem com prob. > 20%%")
	out.add("• PINTURA: Não pintar com umidade > 85%% ou prob. > 15%%")
	out.add("• ALVENARIA: Proteger materiais com prob. > 25%%")
	out.add("• TERRAPLANAGEM: Suspender com prob. > 30%%")
	out.add("• COBERTURA: Priorizar em dias com prob. < 10%%")
	out.blank()
	out.add("DISCLAIMER LEGAL:")
	out.rule(25)
	out.add("Este relatório baseia-se exclusivamente em dados históricos")
	out.add("e não constitui previsão meteorológica oficial. Para decisões")
	out.add("críticas de obra, consulte sempre previsão meteorológica")
	out.add("atualizada e profissionais especializados.")
	out.blank()
	out.add("Relatório gerado pelo Sistema de Análise Climática v2.0")
	out.add("%s", strings.Repeat("=", 80))
}

// columnTitle renders rain_mm_StormGlass as "Rain Mm Stormglass"
func columnTitle(column string) string {
	words := strings.Split(column, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(strings.ToLower(w))
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
