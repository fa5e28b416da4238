package report

import (
	"strings"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomonte/internal/testkit"
)

func TestAggregate(t *testing.T) {
	records := testkit.FixtureHistory(10)
	// Add a second sampler group
	extra := testkit.FixtureHistory(3)
	for i := range extra {
		extra[i].Sampler = "normal"
	}
	records = append(records, extra...)

	summaries := Aggregate(records)
	require.Len(t, summaries, 2)

	// Sorted by sampler name
	assert.Equal(t, "normal", summaries[0].Sampler)
	assert.Equal(t, "uniform", summaries[1].Sampler)
	assert.Equal(t, 3, summaries[0].Runs)
	assert.Equal(t, 10, summaries[1].Runs)

	// Cross-check the uniform group against the library directly
	means := make([]float64, 0, 10)
	trials := make([]float64, 0, 10)
	for _, record := range records {
		if record.Sampler == "uniform" {
			means = append(means, record.Mean)
			trials = append(trials, float64(record.Trials))
		}
	}
	wantMean, err := stats.Mean(means)
	require.NoError(t, err)
	wantMedian, err := stats.Median(trials)
	require.NoError(t, err)

	assert.InDelta(t, wantMean, summaries[1].MeanOfMeans, 1e-12)
	assert.InDelta(t, wantMedian, summaries[1].MedianTrials, 1e-12)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestMarkdown(t *testing.T) {
	records := testkit.FixtureHistory(5)

	md := Markdown(records)
	assert.Contains(t, md, "# Estimation run history")
	assert.Contains(t, md, "Total runs: 5")
	assert.Contains(t, md, "| uniform |")
	for _, record := range records {
		assert.Contains(t, md, record.ID.String())
	}

	empty := Markdown(nil)
	assert.Contains(t, empty, "No runs recorded yet.")
}

func TestHTML(t *testing.T) {
	html := string(HTML(testkit.FixtureHistory(3)))
	assert.True(t, strings.Contains(html, "<table>"), "report HTML should render markdown tables")
	assert.Contains(t, html, "Estimation run history")
}

func TestMarkdown_TruncatesRecentRuns(t *testing.T) {
	records := testkit.FixtureHistory(30)
	md := Markdown(records)
	assert.Contains(t, md, records[0].ID.String())
	assert.NotContains(t, md, records[29].ID.String())
}
