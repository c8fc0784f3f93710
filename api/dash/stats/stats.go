package stats

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// TourSummary is the slice of a tour file the aggregator needs.
type TourSummary struct {
	FileCode   string          `json:"file_code"`
	TourName   string          `json:"tour_name"`
	Guide      string          `json:"guide"`
	Pax        int             `json:"pax"`
	Revenue    decimal.Decimal `json:"revenue"`
	RoomNights int             `json:"room_nights"`
	Hotels     []string        `json:"hotels"`
	Cities     []string        `json:"cities"`
	Guides     []string        `json:"guides"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Manager    string          `json:"manager"`
}

// Filter narrows the tour files feeding the dashboard. Zero values mean
// no constraint.
type Filter struct {
	Year      int
	Month     int
	ManagerID string
}

type KPIs struct {
	TotalPax        int             `json:"totalPax"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalRoomNights int             `json:"totalRoomNights"`
	TotalFiles      int             `json:"totalFiles"`
}

type GuideStat struct {
	Name    string          `json:"name"`
	Files   int             `json:"files"`
	Pax     int             `json:"pax"`
	Revenue decimal.Decimal `json:"revenue"`
}

type HotelStat struct {
	Name       string `json:"name"`
	Bookings   int    `json:"bookings"`
	RoomNights int    `json:"roomNights"`
}

type DashboardStats struct {
	KPIs       KPIs          `json:"kpis"`
	GuideStats []GuideStat   `json:"guideStats"`
	HotelStats []HotelStat   `json:"hotelStats"`
	TourFiles  []TourSummary `json:"tourFiles"`
}

// FetchTourSummaries loads the filtered tour files with their list columns
// decoded.
func FetchTourSummaries(db *sql.DB, f Filter) ([]TourSummary, error) {
	query := `
		SELECT tf.file_code, tf.tour_name, COALESCE(tf.guide, ''), tf.pax, tf.revenue,
		       tf.room_nights, tf.hotels, tf.cities, tf.guides, tf.year, tf.month,
		       COALESCE(u.name, '')
		FROM tour_files tf
		LEFT JOIN users u ON u.id = tf.manager_id`
	params := []interface{}{}
	where := ""
	and := func(cond string, val interface{}) {
		params = append(params, val)
		clause := fmt.Sprintf(cond, len(params))
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}
	if f.Year > 0 {
		and("tf.year = $%d", f.Year)
	}
	if f.Month > 0 {
		and("tf.month = $%d", f.Month)
	}
	if f.ManagerID != "" {
		and("tf.manager_id = $%d", f.ManagerID)
	}
	query += where + ` ORDER BY tf.start_date DESC`

	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tours := []TourSummary{}
	for rows.Next() {
		var t TourSummary
		var revenue string
		var hotelsRaw, citiesRaw, guidesRaw []byte
		if err := rows.Scan(
			&t.FileCode, &t.TourName, &t.Guide, &t.Pax, &revenue,
			&t.RoomNights, &hotelsRaw, &citiesRaw, &guidesRaw, &t.Year, &t.Month,
			&t.Manager,
		); err != nil {
			return nil, err
		}
		t.Revenue, _ = decimal.NewFromString(revenue)
		t.Hotels = decodeList(hotelsRaw)
		t.Cities = decodeList(citiesRaw)
		t.Guides = decodeList(guidesRaw)
		tours = append(tours, t)
	}
	return tours, rows.Err()
}

// decodeList tolerates malformed stored JSON; bad columns read as empty.
func decodeList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

// ComputeDashboardStats aggregates tour files into KPI totals, per-guide
// stats (files descending) and per-hotel stats (bookings descending). A
// tour's room nights divide evenly across its hotels, integer floor, so a
// 6-night tour over 3 hotels credits 2 nights to each.
func ComputeDashboardStats(tours []TourSummary) DashboardStats {
	stats := DashboardStats{
		KPIs:       KPIs{TotalRevenue: decimal.Zero},
		GuideStats: []GuideStat{},
		HotelStats: []HotelStat{},
		TourFiles:  tours,
	}

	guideIdx := map[string]int{}
	hotelIdx := map[string]int{}

	for _, t := range tours {
		stats.KPIs.TotalPax += t.Pax
		stats.KPIs.TotalRevenue = stats.KPIs.TotalRevenue.Add(t.Revenue)
		stats.KPIs.TotalRoomNights += t.RoomNights
		stats.KPIs.TotalFiles++

		if t.Guide != "" {
			i, ok := guideIdx[t.Guide]
			if !ok {
				i = len(stats.GuideStats)
				guideIdx[t.Guide] = i
				stats.GuideStats = append(stats.GuideStats, GuideStat{Name: t.Guide, Revenue: decimal.Zero})
			}
			stats.GuideStats[i].Files++
			stats.GuideStats[i].Pax += t.Pax
			stats.GuideStats[i].Revenue = stats.GuideStats[i].Revenue.Add(t.Revenue)
		}

		if len(t.Hotels) > 0 {
			share := t.RoomNights / len(t.Hotels)
			for _, h := range t.Hotels {
				i, ok := hotelIdx[h]
				if !ok {
					i = len(stats.HotelStats)
					hotelIdx[h] = i
					stats.HotelStats = append(stats.HotelStats, HotelStat{Name: h})
				}
				stats.HotelStats[i].Bookings++
				stats.HotelStats[i].RoomNights += share
			}
		}
	}

	sort.SliceStable(stats.GuideStats, func(a, b int) bool {
		return stats.GuideStats[a].Files > stats.GuideStats[b].Files
	})
	sort.SliceStable(stats.HotelStats, func(a, b int) bool {
		return stats.HotelStats[a].Bookings > stats.HotelStats[b].Bookings
	})
	return stats
}
