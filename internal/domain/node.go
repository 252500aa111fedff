package domain

// Role tracks how a node participates in route construction.
// Transitions are monotonic: Unassigned -> Exterior -> Interior.
type Role int

const (
	RoleUnassigned Role = iota
	RoleExterior
	RoleInterior
)

func (r Role) String() string {
	switch r {
	case RoleUnassigned:
		return "unassigned"
	case RoleExterior:
		return "exterior"
	case RoleInterior:
		return "interior"
	default:
		return "unknown"
	}
}

// Side is the set of anchor edges a node currently touches.
type Side uint8

const (
	SideNone   Side = 0
	SideStart  Side = 1 << 0
	SideFinish Side = 1 << 1
	SideBoth        = SideStart | SideFinish
)

func (s Side) Has(o Side) bool { return s&o == o && o != SideNone }

func (s Side) String() string {
	switch s {
	case SideNone:
		return "none"
	case SideStart:
		return "start"
	case SideFinish:
		return "finish"
	case SideBoth:
		return "both"
	default:
		return "invalid"
	}
}

// Node is a single location of a routing instance.
//
// ID is the node's position in the instance and doubles as its index into
// the cost matrix. Route, Role and Sides are mutated only by the merge
// engine while a solve is running.
type Node struct {
	ID int
	Coordinates
	Demand float64

	Route *Route
	Role  Role
	Sides Side
}

// Record the node's position within its route.
// A node that still touches an anchor is exterior; otherwise it is interior.
func (n *Node) place(r *Route, sides Side) error {
	if n.Role == RoleInterior && sides != SideNone {
		return ErrRouteInvariant
	}

	n.Route = r
	n.Sides = sides
	if sides == SideNone {
		n.Role = RoleInterior
	} else {
		n.Role = RoleExterior
	}
	return nil
}

// Report whether the node may still be used as an attachment point.
func (n *Node) IsExterior() bool { return n.Role == RoleExterior }

// Report whether the node has not been placed in any route yet.
func (n *Node) IsUnassigned() bool { return n.Role == RoleUnassigned }
