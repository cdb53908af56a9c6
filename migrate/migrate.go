package migrate

import (
	"sort"
	"time"

	"github.com/agoraforum/agora/db"
	"github.com/agoraforum/agora/utils/log"

	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

// Step is a single schema migration. Steps are applied in ascending Name
// order, applied steps are skipped on rerun.
type Step struct {
	Name string
	Run  func(tx *gorm.DB) error
}

// Runner applies migration steps and keeps the bookkeeping table.
type Runner struct {
	tx    *gorm.DB
	notes []string
}

// NewRunner creates the runner, the bookkeeping table is created if absent.
func NewRunner(tx *gorm.DB) (*Runner, error) {
	if err := tx.AutoMigrate(&db.Migration{}); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return &Runner{tx: tx}, nil
}

// Apply runs all pending steps for extension, core steps use empty
// extension. Progress notes are logged and collected.
func (r *Runner) Apply(extension string, steps []*Step) error {
	sorted := make([]*Step, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	rec, err := db.NewORM[db.Migration](r.tx).
		Where("extension = ?", extension).Find()
	if err != nil {
		return err
	}
	applied := make(map[string]bool, len(rec))
	for _, v := range rec {
		applied[v.Migration] = true
	}

	for _, s := range sorted {
		if applied[s.Name] {
			continue
		}
		r.note("Migrating: " + s.Name)
		step := s
		if err := r.tx.Transaction(func(tx *gorm.DB) error {
			if err := step.Run(tx); err != nil {
				return err
			}
			return db.NewORM[db.Migration](tx).Create(&db.Migration{
				Migration: step.Name,
				Extension: extension,
				AppliedAt: time.Now(),
			})
		}); err != nil {
			return tracerr.Wrap(err)
		}
		r.note("Migrated: " + s.Name)
	}
	return nil
}

// Notes returns all collected progress notes in order.
func (r *Runner) Notes() []string {
	return r.notes
}

func (r *Runner) note(text string) {
	r.notes = append(r.notes, text)
	log.New().Info(text)
}
