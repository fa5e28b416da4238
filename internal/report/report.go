package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"gomonte/domain/estimate"
)

// SamplerSummary aggregates the stored runs of one sampler
type SamplerSummary struct {
	Sampler       string  `json:"sampler"`
	Runs          int     `json:"runs"`
	MeanOfMeans   float64 `json:"mean_of_means"`
	StdDevOfMeans float64 `json:"stddev_of_means"`
	MedianTrials  float64 `json:"median_trials"`
	P95Trials     float64 `json:"p95_trials"`
}

// Aggregate groups run records by sampler and summarizes each group.
// Percentile and stddev come out as zero for single-run groups, which
// is what the underlying library reports for degenerate inputs.
func Aggregate(records []estimate.RunRecord) []SamplerSummary {
	bySampler := make(map[string][]estimate.RunRecord)
	for _, record := range records {
		bySampler[record.Sampler] = append(bySampler[record.Sampler], record)
	}

	summaries := make([]SamplerSummary, 0, len(bySampler))
	for name, group := range bySampler {
		means := make([]float64, len(group))
		trials := make([]float64, len(group))
		for i, record := range group {
			means[i] = record.Mean
			trials[i] = float64(record.Trials)
		}

		meanOfMeans, _ := stats.Mean(means)
		stdDev, _ := stats.StandardDeviation(means)
		medianTrials, _ := stats.Median(trials)
		p95Trials, _ := stats.Percentile(trials, 95)

		summaries = append(summaries, SamplerSummary{
			Sampler:       name,
			Runs:          len(group),
			MeanOfMeans:   meanOfMeans,
			StdDevOfMeans: stdDev,
			MedianTrials:  medianTrials,
			P95Trials:     p95Trials,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Sampler < summaries[j].Sampler
	})
	return summaries
}

// Markdown renders the run history report as a markdown document
func Markdown(records []estimate.RunRecord) string {
	var b strings.Builder
	b.WriteString("# Estimation run history\n\n")
	fmt.Fprintf(&b, "Total runs: %d\n\n", len(records))

	if len(records) == 0 {
		b.WriteString("No runs recorded yet.\n")
		return b.String()
	}

	b.WriteString("## Per-sampler summary\n\n")
	b.WriteString("| Sampler | Runs | Mean of means | StdDev of means | Median trials | P95 trials |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, s := range Aggregate(records) {
		fmt.Fprintf(&b, "| %s | %d | %.6f | %.6f | %.0f | %.0f |\n",
			s.Sampler, s.Runs, s.MeanOfMeans, s.StdDevOfMeans, s.MedianTrials, s.P95Trials)
	}

	b.WriteString("\n## Recent runs\n\n")
	b.WriteString("| ID | Sampler | Mean | StdErr | Trials | Workers | Elapsed |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	limit := len(records)
	if limit > 20 {
		limit = 20
	}
	for _, record := range records[:limit] {
		fmt.Fprintf(&b, "| %s | %s | %.6f | %.6f | %d | %d | %s |\n",
			record.ID, record.Sampler, record.Mean, record.StdErr,
			record.Trials, record.Workers, record.Elapsed())
	}
	return b.String()
}

// HTML renders the run history report as an HTML document
func HTML(records []estimate.RunRecord) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(Markdown(records)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.Render(doc, renderer)
}
