package attendance_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
)

var _ = Describe("Summarize", func() {
	Context("when records carry known statuses", func() {
		It("should count every record exactly once", func() {
			// Given
			records := []*attendance.Record{
				{Status: attendance.StatusPresent, TotalHours: 8},
				{Status: attendance.StatusPresent, TotalHours: 8.5},
				{Status: attendance.StatusLate, TotalHours: 7},
				{Status: attendance.StatusHalfDay, TotalHours: 4},
			}

			// When
			s := attendance.Summarize(records)

			// Then
			Expect(s.Present).To(Equal(2))
			Expect(s.Late).To(Equal(1))
			Expect(s.HalfDay).To(Equal(1))
			Expect(s.CountRecords()).To(Equal(len(records)))
			Expect(s.TotalHours).To(Equal(27.5))
		})
	})

	Context("when a record carries an unknown status", func() {
		It("should count it under its literal key instead of dropping it", func() {
			// Given
			records := []*attendance.Record{
				{Status: attendance.StatusPresent, TotalHours: 8},
				{Status: "remote", TotalHours: 8},
			}

			// When
			s := attendance.Summarize(records)

			// Then
			Expect(s.Present).To(Equal(1))
			Expect(s.Other).To(HaveKeyWithValue("remote", 1))
			Expect(s.CountRecords()).To(Equal(2))
		})
	})

	Context("when hours accumulate float noise", func() {
		It("should round the total to two decimal places", func() {
			// Given
			records := []*attendance.Record{
				{Status: attendance.StatusPresent, TotalHours: 8.105},
				{Status: attendance.StatusPresent, TotalHours: 8.104},
			}

			// When
			s := attendance.Summarize(records)

			// Then
			Expect(s.TotalHours).To(BeNumerically("~", 16.21, 0.001))
		})
	})

	Context("when there are no records", func() {
		It("should return a zero summary", func() {
			// When
			s := attendance.Summarize(nil)

			// Then
			Expect(s.CountRecords()).To(Equal(0))
			Expect(s.TotalHours).To(Equal(0.0))
			Expect(s.Other).To(BeNil())
		})
	})
})

var _ = Describe("MonthRange", func() {
	It("should end February on the 28th in a common year", func() {
		start, end := attendance.MonthRange(2025, time.February)
		Expect(start).To(Equal("2025-02-01"))
		Expect(end).To(Equal("2025-02-28"))
	})

	It("should end February on the 29th in a leap year", func() {
		_, end := attendance.MonthRange(2024, time.February)
		Expect(end).To(Equal("2024-02-29"))
	})

	It("should end December on the 31st without rolling the year", func() {
		start, end := attendance.MonthRange(2025, time.December)
		Expect(start).To(Equal("2025-12-01"))
		Expect(end).To(Equal("2025-12-31"))
	})
})

var _ = Describe("RoundHours", func() {
	It("should round a duration to two decimal hours", func() {
		Expect(attendance.RoundHours(8*time.Hour + 20*time.Minute)).To(Equal(8.33))
		Expect(attendance.RoundHours(30 * time.Minute)).To(Equal(0.5))
		Expect(attendance.RoundHours(0)).To(Equal(0.0))
	})
})
