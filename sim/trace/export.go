package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSV column headers for trace exports.
var csvColumns = []string{"run_id", "engine", "clock", "kind", "process", "slot", "remaining"}

// ExportCSV writes one row per record, preceded by a header row.
// Clock and remaining use integer formatting.
func ExportCSV(st *SimulationTrace, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if st != nil {
		for _, r := range st.Records {
			row := []string{
				st.Config.RunID,
				st.Config.Engine,
				strconv.FormatInt(r.Clock, 10),
				string(r.Kind),
				r.Process,
				strconv.Itoa(r.Slot),
				strconv.FormatInt(r.Remaining, 10),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
