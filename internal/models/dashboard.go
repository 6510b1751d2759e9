package models

import "time"

// AdminDashboard summarises hostel state for the admin landing view.
type AdminDashboard struct {
	TotalRooms         int       `json:"total_rooms"`
	OccupiedRooms      int       `json:"occupied_rooms"`
	AvailableRooms     int       `json:"available_rooms"`
	PendingRequests    int       `json:"pending_requests"`
	OpenMaintenance    int       `json:"open_maintenance"`
	PendingVisitors    int       `json:"pending_visitors"`
	UnpaidFeeTotal     float64   `json:"unpaid_fee_total"`
	RegisteredStudents int       `json:"registered_students"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// SystemMetrics is a lightweight aggregate snapshot of runtime counters.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// StudentDashboard summarises the caller's own state.
type StudentDashboard struct {
	Room            *Room     `json:"room,omitempty"`
	PendingRequest  bool      `json:"pending_request"`
	OpenMaintenance int       `json:"open_maintenance"`
	UnpaidFees      int       `json:"unpaid_fees"`
	PendingVisitors int       `json:"pending_visitors"`
	GeneratedAt     time.Time `json:"generated_at"`
}
