package models

// UserStats is the headline block of the admin dashboard.
type UserStats struct {
	TotalUsers     int64   `json:"total_users"`
	UsersThisMonth int64   `json:"users_this_month"`
	UsersLastMonth int64   `json:"users_last_month"`
	GrowthPercent  float64 `json:"growth_percent"`
}

// DistributionItem is one bucket of a demographic distribution. Only the
// dimension being grouped on is set.
type DistributionItem struct {
	AgeRange string `json:"age_range,omitempty" gorm:"column:age_range"`
	Gender   string `json:"gender,omitempty"`
	Barrio   string `json:"barrio,omitempty"`
	Count    int64  `json:"count"`
}

// RecentRegistration is one row of the latest-signups table and of the CSV
// export. Fecha is the registration date, device-local ISO format.
type RecentRegistration struct {
	Fecha    string `json:"fecha"`
	AgeRange string `json:"age_range" gorm:"column:age_range"`
	Gender   string `json:"gender"`
	Barrio   string `json:"barrio"`
}

// AllStats bundles every dashboard block in one response.
type AllStats struct {
	UserStats           UserStats            `json:"user_stats"`
	AgeDistribution     []DistributionItem   `json:"age_distribution"`
	GenderDistribution  []DistributionItem   `json:"gender_distribution"`
	BarrioDistribution  []DistributionItem   `json:"barrio_distribution"`
	RecentRegistrations []RecentRegistration `json:"recent_registrations"`
}
