// Package report renders attendance record sets as delimited text for
// download. encoding/csv handles quoting, so fields containing the delimiter
// are escaped instead of corrupting the row.
package report

import (
	"encoding/csv"
	"io"
)

var header = []string{"Employee ID", "Name", "Date", "Status", "CheckIn", "CheckOut", "Hours"}

// Row is one line of the export. Missing times stay blank; missing hours
// render as 0.
type Row struct {
	EmployeeID string
	Name       string
	Date       string
	Status     string
	CheckIn    string
	CheckOut   string
	Hours      string
}

func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		hours := r.Hours
		if hours == "" {
			hours = "0"
		}
		record := []string{r.EmployeeID, r.Name, r.Date, r.Status, r.CheckIn, r.CheckOut, hours}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
