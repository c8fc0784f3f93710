package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestComputeDashboardStatsTotals(t *testing.T) {
	tours := []TourSummary{
		{FileCode: "TF001", Guide: "Ravi", Pax: 4, Revenue: d("1000.50"), RoomNights: 6, Hotels: []string{"H1", "H2", "H3"}},
		{FileCode: "TF002", Guide: "Ravi", Pax: 2, Revenue: d("500"), RoomNights: 4, Hotels: []string{"H1"}},
		{FileCode: "TF003", Guide: "", Pax: 3, Revenue: d("0"), RoomNights: 5},
	}

	stats := ComputeDashboardStats(tours)

	assert.Equal(t, 9, stats.KPIs.TotalPax)
	assert.Equal(t, "1500.5", stats.KPIs.TotalRevenue.String())
	assert.Equal(t, 15, stats.KPIs.TotalRoomNights)
	assert.Equal(t, 3, stats.KPIs.TotalFiles)
}

func TestComputeDashboardStatsGuides(t *testing.T) {
	tours := []TourSummary{
		{Guide: "Ravi", Pax: 4, Revenue: d("1000")},
		{Guide: "Meena", Pax: 2, Revenue: d("300")},
		{Guide: "Ravi", Pax: 1, Revenue: d("200")},
		{Guide: "", Pax: 9, Revenue: d("9999")},
	}

	stats := ComputeDashboardStats(tours)

	require.Len(t, stats.GuideStats, 2, "blank guides are excluded")
	assert.Equal(t, "Ravi", stats.GuideStats[0].Name)
	assert.Equal(t, 2, stats.GuideStats[0].Files)
	assert.Equal(t, 5, stats.GuideStats[0].Pax)
	assert.Equal(t, "1200", stats.GuideStats[0].Revenue.String())
	assert.Equal(t, "Meena", stats.GuideStats[1].Name)
}

func TestComputeDashboardStatsHotelShare(t *testing.T) {
	// A tour's room nights split evenly across its hotels, floor division.
	tours := []TourSummary{
		{RoomNights: 5, Hotels: []string{"H1", "H2"}}, // 2 each, remainder dropped
		{RoomNights: 4, Hotels: []string{"H1"}},       // 4 to H1
	}

	stats := ComputeDashboardStats(tours)

	require.Len(t, stats.HotelStats, 2)
	assert.Equal(t, "H1", stats.HotelStats[0].Name)
	assert.Equal(t, 2, stats.HotelStats[0].Bookings)
	assert.Equal(t, 6, stats.HotelStats[0].RoomNights)
	assert.Equal(t, "H2", stats.HotelStats[1].Name)
	assert.Equal(t, 1, stats.HotelStats[1].Bookings)
	assert.Equal(t, 2, stats.HotelStats[1].RoomNights)
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := ComputeDashboardStats(nil)

	assert.Equal(t, 0, stats.KPIs.TotalFiles)
	assert.Equal(t, "0", stats.KPIs.TotalRevenue.String())
	assert.Empty(t, stats.GuideStats)
	assert.Empty(t, stats.HotelStats)
}
