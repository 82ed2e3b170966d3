package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
)

var _ = Describe("Auth Handler", func() {
	var (
		handler  *auth.Handler
		service  *auth.Service
		mockRepo *mockUserRepository
		tokenGen *auth.JWTTokenGenerator
	)

	postJSON := func(target string, payload interface{}) *http.Request {
		body, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	registerUser := func(name, email, role string) *auth.AuthResponse {
		resp, err := service.Register(auth.RegisterDTO{
			Name: name, Email: email, Password: "secret123", Role: role,
		})
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = auth.NewJWTTokenGenerator(testSecret, time.Hour)
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, &mockProfileAPI{}, tokenGen, 10, lg)
		handler = auth.NewHandler(service)
	})

	Describe("Register", func() {
		It("should return 201 with the identity payload", func() {
			w := httptest.NewRecorder()

			handler.Register(w, postJSON("/auth/register", auth.RegisterDTO{
				Name: "Budi", Email: "budi@mail.com", Password: "secret123",
			}))

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp auth.AuthResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Email).To(Equal("budi@mail.com"))
			Expect(resp.Token).NotTo(BeEmpty())
		})

		It("should return 400 when the email is already registered", func() {
			registerUser("Budi", "budi@mail.com", "")
			w := httptest.NewRecorder()

			handler.Register(w, postJSON("/auth/register", auth.RegisterDTO{
				Name: "Other", Email: "budi@mail.com", Password: "different",
			}))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Email already in use"))
		})

		It("should return 400 on missing fields", func() {
			w := httptest.NewRecorder()

			handler.Register(w, postJSON("/auth/register", auth.RegisterDTO{Email: "budi@mail.com"}))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 on a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("{not json")))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			registerUser("Budi", "budi@mail.com", "")
		})

		It("should return 200 with a token for valid credentials", func() {
			w := httptest.NewRecorder()

			handler.Login(w, postJSON("/auth/login", auth.LoginDTO{
				Email: "budi@mail.com", Password: "secret123",
			}))

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should return 400 for a wrong password", func() {
			w := httptest.NewRecorder()

			handler.Login(w, postJSON("/auth/login", auth.LoginDTO{
				Email: "budi@mail.com", Password: "wrong",
			}))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Invalid credentials"))
		})
	})

	Describe("AuthMiddleware", func() {
		var next http.Handler
		var nextCalled bool

		BeforeEach(func() {
			nextCalled = false
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u, ok := internal.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				Expect(u).NotTo(BeNil())
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})
		})

		It("should return 401 without an Authorization header", func() {
			req := httptest.NewRequest(http.MethodGet, "/attendance/today", nil)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(nextCalled).To(BeFalse())
		})

		It("should return 401 for a garbage token", func() {
			req := httptest.NewRequest(http.MethodGet, "/attendance/today", nil)
			req.Header.Set("Authorization", "Bearer not-a-token")
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(nextCalled).To(BeFalse())
		})

		It("should return 401 for an expired token", func() {
			registered := registerUser("Budi", "budi@mail.com", "")
			expiredGen := auth.NewJWTTokenGenerator(testSecret, -time.Hour)
			token, err := expiredGen.GenerateToken(registered.ID, registered.Role)
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/attendance/today", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should attach the identity and call through for a valid token", func() {
			registered := registerUser("Budi", "budi@mail.com", "")

			req := httptest.NewRequest(http.MethodGet, "/attendance/today", nil)
			req.Header.Set("Authorization", "Bearer "+registered.Token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(nextCalled).To(BeTrue())
		})
	})

	Describe("RequireManager", func() {
		var next http.Handler
		var nextCalled bool

		BeforeEach(func() {
			nextCalled = false
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})
		})

		authenticated := func(token string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/attendance/all", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.AuthMiddleware(handler.RequireManager(next)).ServeHTTP(w, req)
			return w
		}

		It("should return 403 for an employee without running the handler", func() {
			employee := registerUser("Budi", "budi@mail.com", "")

			w := authenticated(employee.Token)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(nextCalled).To(BeFalse())
			var resp map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Access denied"))
		})

		It("should call through for a manager", func() {
			manager := registerUser("Sari", "sari@mail.com", "manager")

			w := authenticated(manager.Token)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(nextCalled).To(BeTrue())
		})

		It("should return 401 when no identity was attached", func() {
			req := httptest.NewRequest(http.MethodGet, "/attendance/all", nil)
			w := httptest.NewRecorder()

			handler.RequireManager(next).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(nextCalled).To(BeFalse())
		})
	})
})
