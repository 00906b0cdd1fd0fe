package report

import "github.com/pidim-smart/report-dashboard/pkg/models/domain"

// GroupPoints arranges chart points into the branch-grouped series layout
// the bar renderer expects. Branches and categories keep first-appearance
// order; points sharing a branch and category accumulate.
func GroupPoints(points []domain.ChartPoint) (branches []string, categories []string, series [][]float64) {
	branchIdx := map[string]int{}
	categoryIdx := map[string]int{}
	type cell struct{ category, branch string }
	values := map[cell]float64{}

	for _, p := range points {
		if _, ok := branchIdx[p.Branch]; !ok {
			branchIdx[p.Branch] = len(branches)
			branches = append(branches, p.Branch)
		}
		if _, ok := categoryIdx[p.Category]; !ok {
			categoryIdx[p.Category] = len(categories)
			categories = append(categories, p.Category)
		}
		values[cell{p.Category, p.Branch}] += p.Value
	}

	series = make([][]float64, len(categories))
	for i, category := range categories {
		series[i] = make([]float64, len(branches))
		for j, branch := range branches {
			series[i][j] = values[cell{category, branch}]
		}
	}
	return branches, categories, series
}
