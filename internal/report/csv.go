package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"savings-route-service/internal/domain"
	"strconv"
	"strings"
)

var (
	capacityHeader = []string{"Instance", "# nodes", "vCap", "CWS Sol.", "# routes", "Time (s)"}
	budgetHeader   = []string{"Instance", "alpha", "# nodes", "fleetSize", "routeMaxCost", "maxRouteCostFound", "totalRouteCostFound", "PJS Sol.", "Time (s)"}
)

// CSVWriter prints one benchmark line per result. The columns depend on
// whether the variant is the capacity one or a budget one.
type CSVWriter struct {
	w *csv.Writer
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) Header(v domain.Variant) error {
	h := capacityHeader
	if v.HasDistinctAnchors() {
		h = budgetHeader
	}
	return c.write(h)
}

func (c *CSVWriter) Result(res *domain.Result) error {
	secs := fmt.Sprintf("%.3f", res.Elapsed.Seconds())

	if !res.Variant.HasDistinctAnchors() {
		return c.write([]string{
			res.Instance,
			strconv.Itoa(res.NumNodes),
			strconv.FormatFloat(res.Capacity, 'f', -1, 64),
			fmt.Sprintf("%.2f", res.TotalCost),
			strconv.Itoa(len(res.Routes)),
			secs,
		})
	}
	return c.write([]string{
		res.Instance,
		strconv.FormatFloat(res.Alpha, 'f', -1, 64),
		strconv.Itoa(res.NumNodes),
		strconv.Itoa(res.FleetSize),
		fmt.Sprintf("%.2f", res.MaxCost),
		fmt.Sprintf("%.2f", res.MaxRouteCost),
		fmt.Sprintf("%.2f", res.TotalCost),
		fmt.Sprintf("%.2f", res.TotalDemand),
		secs,
	})
}

func (c *CSVWriter) write(rec []string) error {
	if err := c.w.Write(rec); err != nil {
		return fmt.Errorf("write report line: %w", err)
	}
	c.w.Flush()
	return c.w.Error()
}

// Routes prints one line per route: its node path, demand and cost.
func Routes(w io.Writer, res *domain.Result) error {
	for _, r := range res.Routes {
		ids := make([]string, len(r.NodeIDs))
		for i, id := range r.NodeIDs {
			ids[i] = strconv.Itoa(id)
		}
		if _, err := fmt.Fprintf(w, "[%s] -> Demand: %.2f, Cost: %.2f\n", strings.Join(ids, " "), r.Demand, r.Cost); err != nil {
			return fmt.Errorf("write route line: %w", err)
		}
	}
	if len(res.Unserved) > 0 {
		if _, err := fmt.Fprintf(w, "unserved: %v\n", res.Unserved); err != nil {
			return fmt.Errorf("write route line: %w", err)
		}
	}
	return nil
}
