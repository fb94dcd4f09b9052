package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemamap/backend/internal/adapters/dataset"
	"github.com/cinemamap/backend/internal/application/services"
	"github.com/cinemamap/backend/internal/domain/entities"
)

func shares(pairs ...interface{}) []entities.MarketShare {
	var out []entities.MarketShare
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, entities.MarketShare{Category: pairs[i].(string), Percent: pairs[i+1].(float64)})
	}
	return out
}

func TestMarketShareSummary(t *testing.T) {
	cinemas := []entities.Cinema{
		{Name: "A", MarketShares: shares("films français", 40.0, "films américains", 50.0)},
		{Name: "B", MarketShares: shares("films français", 20.0, "films américains", 30.0, "autres films", 10.0)},
		{Name: "C", MarketShares: shares("films américains", 10.0)},
	}

	summary := services.MarketShareSummary(cinemas)

	assert.Equal(t, []entities.ShareSlice{
		{Category: "films français", Average: 30},
		{Category: "films américains", Average: 30},
		{Category: "autres films", Average: 10},
	}, summary)
}

func TestMarketShareSummary_MissingValuesKeepColumnOrder(t *testing.T) {
	cinemas := []entities.Cinema{
		{Name: "A", MarketShares: []entities.MarketShare{
			{Category: "films français", Missing: true},
			{Category: "films américains", Percent: 60},
			{Category: "autres films", Missing: true},
		}},
		{Name: "B", MarketShares: []entities.MarketShare{
			{Category: "films français", Percent: 40},
			{Category: "films américains", Percent: 50},
			{Category: "autres films", Missing: true},
		}},
	}

	summary := services.MarketShareSummary(cinemas)

	require.Len(t, summary, 2)
	assert.Equal(t, entities.ShareSlice{Category: "films français", Average: 40}, summary[0])
	assert.Equal(t, entities.ShareSlice{Category: "films américains", Average: 55}, summary[1])
}

func TestMarketShareSummary_SparseFirstRowFromDataset(t *testing.T) {
	table := "DEP;commune;nom;adresse;écrans;fauteuils;séances;entrées 2019;" +
		"PdM en entrées des films français;PdM en entrées des films américains;" +
		"PdM en entrées des films Art et Essai;latitude;longitude\n" +
		"01;Bourg;Amphi;1 rue A;2;200;500;10000;;60;10;46.2;5.2\n" +
		"01;Oyonnax;Atmosphère;2 rue B;3;300;600;12000;40;50;20;46.25;5.65\n"

	cinemas, err := dataset.ParseCinemas(strings.NewReader(table))
	require.NoError(t, err)

	summary := services.MarketShareSummary(cinemas)

	require.Len(t, summary, 2)
	assert.Equal(t, "films français", summary[0].Category)
	assert.Equal(t, 40.0, summary[0].Average)
	assert.Equal(t, "films américains", summary[1].Category)
	assert.Equal(t, 55.0, summary[1].Average)
}

func TestMarketShareSummary_Empty(t *testing.T) {
	assert.Empty(t, services.MarketShareSummary(nil))
}

func TestMarketShareChart(t *testing.T) {
	chart := services.MarketShareChart([]entities.Cinema{
		{MarketShares: shares("films français", 40.0)},
	}, services.MarketShareTitle)

	assert.Equal(t, entities.ChartKindPie, chart.Kind)
	assert.Equal(t, services.MarketShareTitle, chart.Title)
	assert.Equal(t, []entities.DataPoint{{Label: "films français", Value: 40}}, chart.Points)
}

func TestCinemaCountByDepartment(t *testing.T) {
	chart := services.CinemaCountByDepartment([]entities.Cinema{
		{Department: "75"}, {Department: "01"}, {Department: "75"}, {Department: "2B"},
	})

	assert.Equal(t, entities.ChartKindBar, chart.Kind)
	assert.Equal(t, 5, chart.XTickStep)
	assert.Equal(t, []entities.DataPoint{
		{Label: "01", Value: 1},
		{Label: "2B", Value: 1},
		{Label: "75", Value: 2},
	}, chart.Points)
}

func TestPerCinemaCharts(t *testing.T) {
	rate := 156.25
	cinemas := []entities.Cinema{
		{Name: "Rex", Screens: 5, Seats: 800, OccupancyRate: &rate},
		{Name: "Fermé", Screens: 0, Seats: 0},
	}

	screens := services.ScreensChart(cinemas)
	assert.Equal(t, entities.ChartKindBar, screens.Kind)
	assert.Equal(t, []entities.DataPoint{{Label: "Rex", Value: 5}, {Label: "Fermé", Value: 0}}, screens.Points)

	seats := services.SeatsPerScreenChart(cinemas)
	require.Len(t, seats.Points, 1)
	assert.Equal(t, entities.DataPoint{Label: "Rex", Value: 160}, seats.Points[0])

	occupancy := services.OccupancyChart(cinemas)
	assert.Equal(t, entities.ChartKindLine, occupancy.Kind)
	assert.Equal(t, []entities.DataPoint{{Label: "Rex", Value: 156.25}}, occupancy.Points)
}
