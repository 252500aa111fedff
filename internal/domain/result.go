package domain

import "time"

// RouteSummary is the externally reported form of one constructed route.
type RouteSummary struct {
	RouteID int     `json:"route_id"`
	NodeIDs []int   `json:"node_ids"`
	Cost    float64 `json:"cost"`
	Demand  float64 `json:"demand"`
}

// Result is the outcome of one construction run after fleet selection.
//
// TotalDemand is the collected reward in the budget variants. Unserved lists
// nodes that could not be placed on any feasible route.
type Result struct {
	SolutionID   string         `json:"solution_id"`
	Instance     string         `json:"instance"`
	Variant      Variant        `json:"variant"`
	Alpha        float64        `json:"alpha"`
	NumNodes     int            `json:"num_nodes"`
	Capacity     float64        `json:"capacity,omitempty"`
	FleetSize    int            `json:"fleet_size,omitempty"`
	MaxCost      float64        `json:"max_cost,omitempty"`
	Routes       []RouteSummary `json:"routes"`
	TotalCost    float64        `json:"total_cost"`
	TotalDemand  float64        `json:"total_demand"`
	MaxRouteCost float64        `json:"max_route_cost"`
	Unserved     []int          `json:"unserved,omitempty"`
	Elapsed      time.Duration  `json:"elapsed_ns"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Summarize the routes and aggregates of a solution.
func Summarize(s *Solution) []RouteSummary {
	out := make([]RouteSummary, 0, len(s.Routes))
	for _, r := range s.Routes {
		out = append(out, RouteSummary{
			RouteID: r.ID,
			NodeIDs: r.NodeIDs(),
			Cost:    r.Cost,
			Demand:  r.Demand,
		})
	}
	return out
}
