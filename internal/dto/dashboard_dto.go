package dto

import "time"

// DashboardQuery carries the optional dashboard filters. Every field
// defaults to "all".
type DashboardQuery struct {
	DataType string `form:"dataType"`
	Year     string `form:"year"`
	Region   string `form:"region"`
	Province string `form:"province"`
}

// ChartRow is one bar/slice of a category or level breakdown. Rows with a
// zero count are never emitted.
type ChartRow struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// RecentActivity is one line of the combined newest-first activity feed.
type RecentActivity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Province  string    `json:"province"`
	CreatedAt time.Time `json:"created_at"`
}

type RecentPolicy struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Level       string    `json:"level"`
	Province    string    `json:"province"`
	SigningDate time.Time `json:"signing_date"`
}

// DashboardFilters echoes the resolved filter values back for UI state
// reconciliation.
type DashboardFilters struct {
	DataType string `json:"dataType"`
	Year     string `json:"year"`
	Region   string `json:"region"`
	Province string `json:"province"`
}

type DashboardResponse struct {
	TraditionCount        int64 `json:"traditionCount"`
	PublicPolicyCount     int64 `json:"publicPolicyCount"`
	EthnicGroupCount      int64 `json:"ethnicGroupCount"`
	CreativeActivityCount int64 `json:"creativeActivityCount"`
	TotalCount            int64 `json:"totalCount"`
	UserCount             int64 `json:"userCount"`

	TraditionChart        []ChartRow `json:"traditionChart"`
	PublicPolicyChart     []ChartRow `json:"publicPolicyChart"`
	EthnicGroupChart      []ChartRow `json:"ethnicGroupChart"`
	CreativeActivityChart []ChartRow `json:"creativeActivityChart"`

	RecentActivities []RecentActivity `json:"recentActivities"`
	RecentPolicies   []RecentPolicy   `json:"recentPolicies"`

	Filters DashboardFilters `json:"filters"`
}
