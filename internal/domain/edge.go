package domain

// Edge is a directed arc between two nodes.
//
// Savings, Efficiency and Inverse are only populated for candidate edges
// produced by the savings list builder; route edges leave them zero.
type Edge struct {
	From *Node
	To   *Node
	Cost float64

	Savings    float64
	Efficiency float64
	Inverse    *Edge
}

// Report whether the edge connects from -> to.
func (e Edge) Connects(from, to *Node) bool { return e.From == from && e.To == to }

// Pairwise travel costs indexed by node ID.
type CostMatrix [][]float64

// Cost of travelling from one node to another.
func (m CostMatrix) Cost(from, to *Node) float64 { return m[from.ID][to.ID] }

// Number of nodes covered by the matrix.
func (m CostMatrix) Size() int { return len(m) }
