package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/attendance-tracker/internal"
	userDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-tracker/internal/user"
)

func TestUserRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "UserRepository Suite")
}

var _ = Describe("UserRepository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	seedUser := func(name, email, role, employeeID string) *user.User {
		u := &user.User{
			Name:         name,
			Email:        email,
			PasswordHash: "hashed",
			Role:         role,
			EmployeeID:   employeeID,
		}
		err := repo.Create(u)
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewUserRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should persist a user and backfill the id", func() {
			u := seedUser("Budi", "budi@mail.com", "employee", "EMPAAAA0001")

			Expect(u.ID).To(BeNumerically(">", 0))
		})

		It("should map a duplicate email to email taken", func() {
			seedUser("Budi", "budi@mail.com", "employee", "EMPAAAA0001")

			err := repo.Create(&user.User{
				Name: "Other", Email: "budi@mail.com", PasswordHash: "x",
				Role: "employee", EmployeeID: "EMPBBBB0002",
			})

			Expect(err).To(Equal(internal.ErrEmailTaken))
		})
	})

	Describe("GetByEmail", func() {
		It("should find the user by email", func() {
			seedUser("Budi", "budi@mail.com", "employee", "EMPAAAA0001")

			u, err := repo.GetByEmail("budi@mail.com")

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Name).To(Equal("Budi"))
		})

		It("should map a missing user to user not found", func() {
			u, err := repo.GetByEmail("nobody@mail.com")

			Expect(err).To(Equal(internal.ErrUserNotFound))
			Expect(u).To(BeNil())
		})
	})

	Describe("EmailTaken", func() {
		It("should ignore the excluded account itself", func() {
			u := seedUser("Budi", "budi@mail.com", "employee", "EMPAAAA0001")

			taken, err := repo.EmailTaken("budi@mail.com", u.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeFalse())
		})

		It("should report another account's email as taken", func() {
			seedUser("Budi", "budi@mail.com", "employee", "EMPAAAA0001")
			other := seedUser("Dewi", "dewi@mail.com", "employee", "EMPBBBB0002")

			taken, err := repo.EmailTaken("budi@mail.com", other.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("should change the mutable fields only", func() {
			u := seedUser("Budi", "budi@mail.com", "employee", "EMPAAAA0001")
			u.Name = "Budi S."
			u.Email = "budi.s@mail.com"
			u.Department = "Finance"

			err := repo.Update(u)

			Expect(err).NotTo(HaveOccurred())
			stored, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("Budi S."))
			Expect(stored.Email).To(Equal("budi.s@mail.com"))
			Expect(stored.Department).To(Equal("Finance"))
			Expect(stored.Role).To(Equal("employee"))
			Expect(stored.EmployeeID).To(Equal("EMPAAAA0001"))
		})
	})

	Describe("CountEmployees", func() {
		It("should count employees but not managers", func() {
			seedUser("Budi", "budi@mail.com", "employee", "EMPAAAA0001")
			seedUser("Dewi", "dewi@mail.com", "employee", "EMPBBBB0002")
			seedUser("Sari", "sari@mail.com", "manager", "EMPCCCC0003")

			count, err := repo.CountEmployees()

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})
	})

	Describe("ListEmployeesExcluding", func() {
		BeforeEach(func() {
			seedUser("Budi", "budi@mail.com", "employee", "EMPAAAA0001")
			seedUser("Dewi", "dewi@mail.com", "employee", "EMPBBBB0002")
			seedUser("Sari", "sari@mail.com", "manager", "EMPCCCC0003")
		})

		It("should exclude the given ids and all managers", func() {
			budi, err := repo.GetByEmail("budi@mail.com")
			Expect(err).NotTo(HaveOccurred())

			employees, err := repo.ListEmployeesExcluding([]int64{budi.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(1))
			Expect(employees[0].Name).To(Equal("Dewi"))
		})

		It("should list every employee when nothing is excluded", func() {
			employees, err := repo.ListEmployeesExcluding(nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(2))
		})
	})
})
