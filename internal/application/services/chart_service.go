package services

import (
	"sort"

	"github.com/cinemamap/backend/internal/domain/entities"
)

// Chart titles and axis labels shown on the dashboard.
const (
	MarketShareTitle    = "Répartition des parts de marché"
	DepartmentTitle     = "Nombre de cinéma par département"
	ScreensTitle        = "Nombre d'écrans par cinéma"
	SeatsPerScreenTitle = "Nombre de fauteuils par écran"
	OccupancyTitle      = "Taux d'occupation par séance"

	departmentTickStep = 5
)

// MarketShareSummary averages every non-arthouse market-share category over
// the records that carry a value for it. Categories keep their column order;
// a category with no value in any record is left out.
func MarketShareSummary(cinemas []entities.Cinema) []entities.ShareSlice {
	var order []string
	seen := make(map[string]bool)
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for i := range cinemas {
		for _, share := range cinemas[i].MarketShares {
			if !seen[share.Category] {
				seen[share.Category] = true
				order = append(order, share.Category)
			}
			if share.Missing {
				continue
			}
			sums[share.Category] += share.Percent
			counts[share.Category]++
		}
	}

	summary := make([]entities.ShareSlice, 0, len(order))
	for _, category := range order {
		if counts[category] == 0 {
			continue
		}
		summary = append(summary, entities.ShareSlice{
			Category: category,
			Average:  sums[category] / float64(counts[category]),
		})
	}
	return summary
}

// MarketShareChart is a pie chart of the average market shares.
func MarketShareChart(cinemas []entities.Cinema, title string) entities.Chart {
	summary := MarketShareSummary(cinemas)
	points := make([]entities.DataPoint, 0, len(summary))
	for _, s := range summary {
		points = append(points, entities.DataPoint{Label: s.Category, Value: s.Average})
	}
	return entities.Chart{
		Kind:   entities.ChartKindPie,
		Title:  title,
		Points: points,
	}
}

// CountByDepartment groups the records by department code, sorted by code.
func CountByDepartment(cinemas []entities.Cinema) []entities.DepartmentCount {
	counts := make(map[string]int)
	for i := range cinemas {
		counts[cinemas[i].Department]++
	}
	out := make([]entities.DepartmentCount, 0, len(counts))
	for dep, n := range counts {
		out = append(out, entities.DepartmentCount{Department: dep, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// CinemaCountByDepartment is a bar chart of the number of cinemas per department.
func CinemaCountByDepartment(cinemas []entities.Cinema) entities.Chart {
	return DepartmentChart(CountByDepartment(cinemas))
}

// DepartmentChart draws precomputed department counts.
func DepartmentChart(counts []entities.DepartmentCount) entities.Chart {
	points := make([]entities.DataPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, entities.DataPoint{Label: c.Department, Value: float64(c.Count)})
	}
	return entities.Chart{
		Kind:      entities.ChartKindBar,
		Title:     DepartmentTitle,
		XLabel:    "Département",
		YLabel:    "Nombre cinéma",
		Points:    points,
		XTickStep: departmentTickStep,
	}
}

// ScreensChart is a bar chart of the screen count of each cinema.
func ScreensChart(cinemas []entities.Cinema) entities.Chart {
	points := make([]entities.DataPoint, 0, len(cinemas))
	for i := range cinemas {
		points = append(points, entities.DataPoint{Label: cinemas[i].Name, Value: float64(cinemas[i].Screens)})
	}
	return entities.Chart{
		Kind:   entities.ChartKindBar,
		Title:  ScreensTitle,
		YLabel: "Écrans",
		Points: points,
	}
}

// SeatsPerScreenChart is a bar chart of seats divided by screens. Cinemas
// without screens have no ratio and are left out.
func SeatsPerScreenChart(cinemas []entities.Cinema) entities.Chart {
	points := make([]entities.DataPoint, 0, len(cinemas))
	for i := range cinemas {
		if cinemas[i].Screens == 0 {
			continue
		}
		points = append(points, entities.DataPoint{
			Label: cinemas[i].Name,
			Value: float64(cinemas[i].Seats) / float64(cinemas[i].Screens),
		})
	}
	return entities.Chart{
		Kind:   entities.ChartKindBar,
		Title:  SeatsPerScreenTitle,
		YLabel: "Fauteuils par écran",
		Points: points,
	}
}

// OccupancyChart is a line chart of the occupancy rate of each cinema.
// Cinemas without a rate are skipped.
func OccupancyChart(cinemas []entities.Cinema) entities.Chart {
	points := make([]entities.DataPoint, 0, len(cinemas))
	for i := range cinemas {
		if cinemas[i].OccupancyRate == nil {
			continue
		}
		points = append(points, entities.DataPoint{Label: cinemas[i].Name, Value: *cinemas[i].OccupancyRate})
	}
	return entities.Chart{
		Kind:   entities.ChartKindLine,
		Title:  OccupancyTitle,
		YLabel: "Taux d'occupation (%)",
		Points: points,
	}
}
