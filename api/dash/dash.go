package dash

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/dash/stats"

	"github.com/gorilla/mux"
)

// Handler: full dashboard aggregate over the filtered tour files
func getDashboardStats(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f stats.Filter
		if year := r.URL.Query().Get("year"); year != "" && year != "all" {
			f.Year, _ = strconv.Atoi(year)
		}
		if month := r.URL.Query().Get("month"); month != "" && month != "all" {
			f.Month, _ = strconv.Atoi(month)
		}
		f.ManagerID = r.URL.Query().Get("manager_id")

		tours, err := stats.FetchTourSummaries(db, f)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, stats.ComputeDashboardStats(tours))
	}
}

// Handler: headline counters for the landing page
func getMetrics(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var totalBookings, totalTickets, pendingBookings, totalCustomers int
		var totalRevenue sql.NullFloat64

		queries := []struct {
			sql  string
			dest interface{}
		}{
			{`SELECT COUNT(*) FROM bookings`, &totalBookings},
			{`SELECT COUNT(*) FROM tickets`, &totalTickets},
			{`SELECT COUNT(*) FROM bookings WHERE status = 'PENDING'`, &pendingBookings},
			{`SELECT COUNT(*) FROM customers`, &totalCustomers},
			{`SELECT SUM(total_amount) FROM bookings`, &totalRevenue},
		}
		for _, q := range queries {
			if err := db.QueryRow(q.sql).Scan(q.dest); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}

		api.RespondWithData(w, map[string]interface{}{
			"metrics": map[string]interface{}{
				"totalBookings":   totalBookings,
				"totalTickets":    totalTickets,
				"pendingBookings": pendingBookings,
				"totalCustomers":  totalCustomers,
				"totalRevenue":    totalRevenue.Float64,
			},
		})
	}
}

// Handler: grouped counts and the revenue trail for charts
func getChartData(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statusRows, err := db.Query(`SELECT status, COUNT(*) AS count FROM bookings GROUP BY status`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer statusRows.Close()
		bookingsByStatus, err := api.RowsToMaps(statusRows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		typeRows, err := db.Query(`SELECT ticket_type AS type, COUNT(*) AS count FROM tickets GROUP BY ticket_type`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer typeRows.Close()
		ticketsByType, err := api.RowsToMaps(typeRows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		revenueRows, err := db.Query(`
			SELECT to_char(created_at, 'YYYY-MM-DD') AS date, total_amount AS amount
			FROM bookings ORDER BY created_at DESC LIMIT 7`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer revenueRows.Close()
		weeklyRevenue, err := api.RowsToMaps(revenueRows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		api.RespondWithData(w, map[string]interface{}{
			"bookingsByStatus": bookingsByStatus,
			"ticketsByType":    ticketsByType,
			"weeklyRevenue":    weeklyRevenue,
		})
	}
}

// Handler: latest bookings rendered as an activity feed
func getRecentActivities(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT b.id, b.destination, b.total_amount, b.created_at, c.name AS customer_name
			FROM bookings b
			LEFT JOIN customers c ON c.id = b.customer_id
			ORDER BY b.created_at DESC
			LIMIT 10`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		recent, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		activities := make([]map[string]interface{}, 0, len(recent))
		for _, b := range recent {
			activities = append(activities, map[string]interface{}{
				"id":       b["id"],
				"type":     "booking",
				"title":    "New booking: " + toString(b["destination"]),
				"customer": b["customer_name"],
				"amount":   b["total_amount"],
				"date":     b["created_at"],
			})
		}
		api.RespondWithData(w, map[string]interface{}{"activities": activities})
	}
}

// Handler: confirmed or pending bookings starting within the next month
func getUpcomingTrips(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT b.*, c.name AS customer_name, c.email AS customer_email, c.phone AS customer_phone
			FROM bookings b
			LEFT JOIN customers c ON c.id = b.customer_id
			WHERE b.start_date >= CURRENT_DATE
			  AND b.start_date <= CURRENT_DATE + INTERVAL '1 month'
			  AND b.status IN ('CONFIRMED', 'PENDING')
			ORDER BY b.start_date ASC
			LIMIT 10`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()
		trips, err := api.RowsToMaps(rows)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithData(w, map[string]interface{}{"upcomingTrips": trips})
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func StartDashService(db *sql.DB) {
	router := mux.NewRouter()
	router.Use(api.SessionMiddleware(api.PolicyAllowAll))

	router.HandleFunc("/dash/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from Dash Service"))
	})

	router.HandleFunc("/dash/stats", getDashboardStats(db)).Methods("GET")
	router.HandleFunc("/dash/metrics", getMetrics(db)).Methods("GET")
	router.HandleFunc("/dash/charts", getChartData(db)).Methods("GET")
	router.HandleFunc("/dash/recent-activities", getRecentActivities(db)).Methods("GET")
	router.HandleFunc("/dash/upcoming-trips", getUpcomingTrips(db)).Methods("GET")

	log.Println("Dash Service started on :5243")
	err := http.ListenAndServe(":5243", router)
	if err != nil {
		log.Fatalf("Dash Service failed: %v", err)
	}
}
