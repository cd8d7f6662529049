// Package plot writes learning-curve pages for finished training runs.
package plot

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"gridrl/experiment"
)

// LearningCurve renders the per-episode return and exploration rate of
// a run as an HTML page at path.
func LearningCurve(title string, summaries []experiment.EpisodeSummary,
	path string) error {
	episodes := make([]string, len(summaries))
	returns := make([]opts.LineData, len(summaries))
	epsilons := make([]opts.LineData, len(summaries))
	for i, s := range summaries {
		episodes[i] = fmt.Sprintf("%d", s.Episode)
		returns[i] = opts.LineData{Value: s.Return}
		epsilons[i] = opts.LineData{Value: s.Epsilon}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)
	line.SetXAxis(episodes)
	line.AddSeries("return", returns)
	line.AddSeries("epsilon", epsilons)

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create plot file: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("could not render plot: %v", err)
	}
	return nil
}
