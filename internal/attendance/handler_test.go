package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
)

var _ = Describe("Attendance Handler", func() {
	var (
		handler  *attendance.Handler
		mockRepo *mockAttendanceRepository
		clock    time.Time
	)

	requestAs := func(userID int64, method, target string) *http.Request {
		req := httptest.NewRequest(method, target, nil)
		ctx := internal.ContextWithUser(context.Background(), &coreuser.User{
			ID: userID, Name: "Budi", Email: "budi@mail.com", Role: coreuser.RoleEmployee,
		})
		return req.WithContext(ctx)
	}

	BeforeEach(func() {
		mockRepo = newMockAttendanceRepository()
		mockCount := &mockEmployeeCounter{count: 3}
		clock = time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)
		service := attendance.NewService(mockRepo, mockCount, testLogger(), attendance.WithClock(func() time.Time {
			return clock
		}))
		handler = attendance.NewHandler(service)
	})

	Describe("CheckIn", func() {
		It("should return 201 with the created record", func() {
			req := requestAs(42, http.MethodPost, "/attendance/checkin")
			w := httptest.NewRecorder()

			handler.CheckIn(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp attendance.RecordResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.UserID).To(Equal(int64(42)))
			Expect(resp.Date).To(Equal("2025-06-02"))
			Expect(resp.Status).To(Equal(attendance.StatusPresent))
			Expect(resp.CheckInTime).To(Equal("09:00:00"))
		})

		It("should return 400 on a double check-in", func() {
			w := httptest.NewRecorder()
			handler.CheckIn(w, requestAs(42, http.MethodPost, "/attendance/checkin"))
			Expect(w.Code).To(Equal(http.StatusCreated))

			w = httptest.NewRecorder()
			handler.CheckIn(w, requestAs(42, http.MethodPost, "/attendance/checkin"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Already checked in"))
		})

		It("should return 401 without an authenticated user", func() {
			req := httptest.NewRequest(http.MethodPost, "/attendance/checkin", nil)
			w := httptest.NewRecorder()

			handler.CheckIn(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("CheckOut", func() {
		It("should return 400 when there is no check-in today", func() {
			w := httptest.NewRecorder()

			handler.CheckOut(w, requestAs(42, http.MethodPost, "/attendance/checkout"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("No check-in today"))
		})

		It("should return the closed record with total hours", func() {
			w := httptest.NewRecorder()
			handler.CheckIn(w, requestAs(42, http.MethodPost, "/attendance/checkin"))
			Expect(w.Code).To(Equal(http.StatusCreated))
			clock = time.Date(2025, 6, 2, 17, 30, 0, 0, time.Local)

			w = httptest.NewRecorder()
			handler.CheckOut(w, requestAs(42, http.MethodPost, "/attendance/checkout"))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp attendance.RecordResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.CheckOutTime).To(Equal("17:30:00"))
			Expect(resp.TotalHours).To(Equal(8.5))
		})
	})

	Describe("MySummary", func() {
		It("should require month and year", func() {
			w := httptest.NewRecorder()

			handler.MySummary(w, requestAs(42, http.MethodGet, "/attendance/my-summary"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Month & year required"))
		})

		It("should reject an out-of-range month", func() {
			w := httptest.NewRecorder()

			handler.MySummary(w, requestAs(42, http.MethodGet, "/attendance/my-summary?month=13&year=2025"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return the month's rollup", func() {
			mockRepo.byUser[42] = []*attendance.Record{
				{UserID: 42, Date: "2025-06-02", Status: attendance.StatusPresent, TotalHours: 8},
				{UserID: 42, Date: "2025-06-03", Status: attendance.StatusLate, TotalHours: 7},
			}
			w := httptest.NewRecorder()

			handler.MySummary(w, requestAs(42, http.MethodGet, "/attendance/my-summary?month=6&year=2025"))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp attendance.Summary
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Present).To(Equal(1))
			Expect(resp.Late).To(Equal(1))
			Expect(resp.TotalHours).To(Equal(15.0))
		})
	})

	Describe("Export", func() {
		It("should stream a CSV attachment", func() {
			out := time.Date(2025, 6, 2, 17, 30, 0, 0, time.Local)
			mockRepo.withUsers = []*attendance.RecordWithUser{
				{
					Record: attendance.Record{
						UserID: 1, Date: "2025-06-02", Status: attendance.StatusPresent,
						CheckInAt: time.Date(2025, 6, 2, 9, 5, 0, 0, time.Local), CheckOutAt: &out, TotalHours: 8.42,
					},
					UserName: "Budi Santoso", EmployeeID: "EMPAAAA0001",
				},
			}
			w := httptest.NewRecorder()

			handler.Export(w, requestAs(1, http.MethodGet, "/attendance/export"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("text/csv"))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("attachment"))
			Expect(w.Body.String()).To(ContainSubstring("Employee ID,Name,Date,Status,CheckIn,CheckOut,Hours"))
			Expect(w.Body.String()).To(ContainSubstring("EMPAAAA0001,Budi Santoso,2025-06-02,present,09:05:00,17:30:00,8.42"))
		})

		It("should reject a half-open date range", func() {
			w := httptest.NewRecorder()

			handler.Export(w, requestAs(1, http.MethodGet, "/attendance/export?start=2025-06-01"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a non-numeric employeeId", func() {
			w := httptest.NewRecorder()

			handler.Export(w, requestAs(1, http.MethodGet, "/attendance/export?employeeId=abc"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("TeamSummary", func() {
		It("should report the day's rollup with derived absences", func() {
			w := httptest.NewRecorder()
			handler.CheckIn(w, requestAs(1, http.MethodPost, "/attendance/checkin"))
			Expect(w.Code).To(Equal(http.StatusCreated))

			w = httptest.NewRecorder()
			handler.TeamSummary(w, requestAs(99, http.MethodGet, "/attendance/summary"))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp attendance.TeamSummary
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.TotalEmployees).To(Equal(int64(3)))
			Expect(resp.Present).To(Equal(1))
			Expect(resp.Absent).To(Equal(int64(2)))
		})
	})
})
