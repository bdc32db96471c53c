package domain

// ResourceStats is the data of GET /{resource}/stats. Each resource fills
// only its own counters.
type ResourceStats struct {
	TotalUsers          int `json:"totalUsers"`
	TotalDoctors        int `json:"totalDoctors"`
	TotalPatients       int `json:"totalPatients"`
	ActiveCoupons       int `json:"activeCoupons"`
	TotalPlans          int `json:"totalPlans"`
	ActiveSubscriptions int `json:"activeSubscriptions"`
	TotalBookings       int `json:"totalBookings"`
	TotalReviews        int `json:"totalReviews"`
	TotalWithdrawals    int `json:"totalWithdrawals"`
}

type DashboardStats struct {
	TotalUsers          int `json:"totalUsers"`
	TotalDoctors        int `json:"totalDoctors"`
	TotalPatients       int `json:"totalPatients"`
	ActiveCoupons       int `json:"activeCoupons"`
	TotalPlans          int `json:"totalPlans"`
	ActiveSubscriptions int `json:"activeSubscriptions"`
}
