package attendance

import "math"

// Summary aggregates a set of records into per-status counts plus total
// hours. Unknown status values are tolerated and counted under their literal
// key rather than dropped.
type Summary struct {
	Present    int            `json:"present"`
	Absent     int            `json:"absent"`
	Late       int            `json:"late"`
	HalfDay    int            `json:"halfDay"`
	Other      map[string]int `json:"other,omitempty"`
	TotalHours float64        `json:"totalHours"`
}

// TeamSummary is the manager-level rollup for a single day. Absent is derived
// by set-difference: employees with no record are implicitly absent.
type TeamSummary struct {
	TotalEmployees int64 `json:"totalEmployees"`
	Present        int   `json:"present"`
	Late           int   `json:"late"`
	Absent         int64 `json:"absent"`
}

// Summarize rolls up records the caller has already filtered to the wanted
// range. It never derives absence; absent rows only appear in the input if
// some upstream wrote them.
func Summarize(records []*Record) *Summary {
	s := &Summary{}
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			s.Present++
		case StatusAbsent:
			s.Absent++
		case StatusLate:
			s.Late++
		case StatusHalfDay:
			s.HalfDay++
		default:
			if s.Other == nil {
				s.Other = make(map[string]int)
			}
			s.Other[r.Status]++
		}
		s.TotalHours += r.TotalHours
	}
	s.TotalHours = math.Round(s.TotalHours*100) / 100
	return s
}

// CountRecords returns the total number of records the summary accounted
// for, across known and unknown status keys.
func (s *Summary) CountRecords() int {
	n := s.Present + s.Absent + s.Late + s.HalfDay
	for _, c := range s.Other {
		n += c
	}
	return n
}
