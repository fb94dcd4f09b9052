package dataset

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cinemamap/backend/internal/domain/entities"
	"github.com/cinemamap/backend/internal/domain/repositories"
)

// Repository is the in-memory cinema table. It is built once per process and
// shared read-only by every query.
type Repository struct {
	cinemas      []entities.Cinema
	byDepartment map[string][]int
	departments  []entities.DepartmentCount
}

// NewRepository loads the table at path.
func NewRepository(path string) (*Repository, error) {
	start := time.Now()
	cinemas, err := LoadCinemas(path)
	if err != nil {
		return nil, err
	}

	repo := NewRepositoryFromRecords(cinemas)
	log.Info().
		Str("path", path).
		Int("cinemas", repo.Count()).
		Int("departments", len(repo.departments)).
		Dur("duration", time.Since(start)).
		Msg("Cinema dataset loaded")
	return repo, nil
}

// NewRepositoryFromRecords wraps already parsed records. The slice is owned by
// the repository afterwards.
func NewRepositoryFromRecords(cinemas []entities.Cinema) *Repository {
	repo := &Repository{
		cinemas:      cinemas,
		byDepartment: make(map[string][]int),
	}
	for i := range cinemas {
		dep := cinemas[i].Department
		repo.byDepartment[dep] = append(repo.byDepartment[dep], i)
	}

	repo.departments = make([]entities.DepartmentCount, 0, len(repo.byDepartment))
	for dep, rows := range repo.byDepartment {
		repo.departments = append(repo.departments, entities.DepartmentCount{Department: dep, Count: len(rows)})
	}
	sort.Slice(repo.departments, func(i, j int) bool {
		return repo.departments[i].Department < repo.departments[j].Department
	})
	return repo
}

var _ repositories.CinemaRepository = (*Repository)(nil)

// All returns the shared table. Callers must treat it as read-only.
func (r *Repository) All() []entities.Cinema {
	return r.cinemas
}

// Count returns the number of cinemas.
func (r *Repository) Count() int {
	return len(r.cinemas)
}

// ByDepartment returns copies of the cinemas of one department in table order.
func (r *Repository) ByDepartment(code string) []entities.Cinema {
	rows := r.byDepartment[code]
	out := make([]entities.Cinema, 0, len(rows))
	for _, i := range rows {
		out = append(out, r.cinemas[i].Clone())
	}
	return out
}

// Departments returns the cinema count of every department sorted by code.
func (r *Repository) Departments() []entities.DepartmentCount {
	return append([]entities.DepartmentCount(nil), r.departments...)
}
