package dto

import "time"

type PointRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand float64 `json:"demand"`
}

// SolveRequest names a stored instance, or carries one inline in Points.
type SolveRequest struct {
	Instance  string         `json:"instance"`
	Variant   string         `json:"variant"`
	Points    []PointRequest `json:"points"`
	Capacity  float64        `json:"capacity"`
	FleetSize int            `json:"fleet_size"`
	MaxCost   float64        `json:"max_cost"`
	Alpha     *float64       `json:"alpha"`
	Refresh   bool           `json:"refresh"`
}

type RouteResponse struct {
	RouteID int     `json:"route_id"`
	Nodes   []int   `json:"nodes"`
	Cost    float64 `json:"cost"`
	Demand  float64 `json:"demand"`
}

type SolveResponse struct {
	SolutionID   string          `json:"solution_id"`
	Instance     string          `json:"instance"`
	Variant      string          `json:"variant"`
	Alpha        float64         `json:"alpha"`
	NumNodes     int             `json:"num_nodes"`
	Routes       []RouteResponse `json:"routes"`
	NumRoutes    int             `json:"num_routes"`
	TotalCost    float64         `json:"total_cost"`
	TotalDemand  float64         `json:"total_demand"`
	MaxRouteCost float64         `json:"max_route_cost"`
	Unserved     []int           `json:"unserved"`
	ElapsedMS    float64         `json:"elapsed_ms"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ListRunsResponse struct {
	Runs []SolveResponse `json:"runs"`
}
