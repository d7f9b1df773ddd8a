package api

// swagger:model api.StatsResponse
type StatsResponse struct {
	TotalUsers     int `json:"total_users" example:"42"`
	TotalOwners    int `json:"total_owners" example:"7"`
	TotalPOIs      int `json:"total_pois" example:"128"`
	RecentActivity int `json:"recent_activity" example:"5"`
}
