package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NameContains matches employees whose full name contains the fragment,
// case-insensitive.
type NameContains struct {
	Fragment string
}

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("full_name ILIKE ?", "%"+s.Fragment+"%")
}

// ByEmail matches the unique email used as the upsert key on ingestion.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email ILIKE ?", s.Email)
}

type ByDepartment struct {
	Department string
}

func (s ByDepartment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("department ILIKE ?", s.Department)
}

type MinYearsExperience struct {
	Years int
}

func (s MinYearsExperience) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("years_experience > ?", s.Years)
}

type MaxYearsExperience struct {
	Years int
}

func (s MaxYearsExperience) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("years_experience < ?", s.Years)
}

// ByEmployeeID scopes child tables (assessments, chunks) to one employee.
type ByEmployeeID struct {
	EmployeeID uuid.UUID
}

func (s ByEmployeeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("employee_id = ?", s.EmployeeID)
}
