package dto

type InstanceResponse struct {
	Name      string  `json:"name"`
	Variant   string  `json:"variant"`
	NumNodes  int     `json:"num_nodes"`
	Capacity  float64 `json:"capacity,omitempty"`
	FleetSize int     `json:"fleet_size,omitempty"`
	MaxCost   float64 `json:"max_cost,omitempty"`
}

type ListInstancesResponse struct {
	Instances []InstanceResponse `json:"instances"`
}
