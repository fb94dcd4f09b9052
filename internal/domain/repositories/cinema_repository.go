package repositories

import (
	"github.com/cinemamap/backend/internal/domain/entities"
)

// CinemaRepository gives read-only access to the cinema table.
//
// Implementations return the shared table; callers must not modify the
// returned records and must copy anything they derive per query.
type CinemaRepository interface {
	All() []entities.Cinema
	Count() int
	ByDepartment(code string) []entities.Cinema
	Departments() []entities.DepartmentCount
}
