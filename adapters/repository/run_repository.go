package repository

import (
	"fmt"

	"github.com/cloudcopper/verity/domain/models"
	"github.com/cloudcopper/verity/domain/vo"
	"github.com/cloudcopper/verity/lib"
	"github.com/cloudcopper/verity/ports"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type RunRepository struct {
	db        ports.DB
	validator *validator.Validate
}

func NewRunRepository(db ports.DB) (*RunRepository, error) {
	r := &RunRepository{
		db:        db,
		validator: lib.NewValidator(),
	}
	_, err := r.FindAll(ports.Limit(1))
	return r, err
}

func (r *RunRepository) Create(model *models.Run) error {
	err := r.db.Transaction(func(db *gorm.DB) error {
		if err := model.Validate(r.validator); err != nil {
			return fmt.Errorf("invalid run object: %w", err)
		}

		if err := db.Create(model).Error; err != nil {
			return fmt.Errorf("unable to save run object: %w", err)
		}
		return nil
	})
	return err
}

// AddFinding stores finding and updates counter of its kind in the run
func (r *RunRepository) AddFinding(model *models.Finding) error {
	column := ""
	switch model.Kind {
	case vo.Modified:
		column = "modified"
	case vo.New:
		column = "new"
	case vo.Deleted:
		column = "deleted"
	case vo.Unreadable:
		column = "unreadable"
	}

	err := r.db.Transaction(func(db *gorm.DB) error {
		if err := r.validator.Struct(model); err != nil {
			return fmt.Errorf("invalid finding object: %w", err)
		}
		if err := db.Create(model).Error; err != nil {
			return fmt.Errorf("unable to save finding object: %w", err)
		}
		ret := db.Model(&models.Run{RunID: model.RunID}).UpdateColumn(column, gorm.Expr(column+" + ?", 1))
		if ret.Error != nil {
			return fmt.Errorf("unable to update run object: %w", ret.Error)
		}
		if ret.RowsAffected != 1 {
			return fmt.Errorf("unable to update run object: %w", ports.ErrRecordNotFound)
		}
		return nil
	})
	return err
}

func (r *RunRepository) Complete(id models.RunID, finishedAt int64, files int, size int64) error {
	ret := r.db.Model(&models.Run{RunID: id}).Updates(map[string]interface{}{
		"finished_at": finishedAt,
		"files":       files,
		"size":        size,
	})
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected != 1 {
		return ports.ErrRecordNotFound
	}
	return nil
}

// FindAll returns runs newest first.
// Accepted flags are ports.Limit, ports.Since and ports.WithRelationship.
func (r *RunRepository) FindAll(flags ...interface{}) ([]*models.Run, error) {
	var runs []*models.Run
	db := r.db.Order("started_at DESC").Order("run_id DESC")

	for _, flag := range flags {
		switch v := flag.(type) {
		case ports.Limit:
			db = db.Limit(int(v))
		case ports.Since:
			db = db.Where("started_at >= ?", int64(v))
		case ports.WithRelationship:
			if !v {
				continue
			}
			db = db.Preload("Findings", func(db ports.DB) ports.DB {
				return db.Order("kind ASC").Order("path ASC")
			})
		default:
			panic(flag)
		}
	}

	err := db.Find(&runs).Error
	return runs, err
}

func (r *RunRepository) FindByID(id models.RunID, flags ...interface{}) (*models.Run, error) {
	var run *models.Run
	db := r.db

	for _, flag := range flags {
		switch v := flag.(type) {
		case ports.WithRelationship:
			if !v {
				continue
			}
			db = db.Preload("Findings", func(db ports.DB) ports.DB {
				return db.Order("kind ASC").Order("path ASC")
			})
		default:
			panic(flag)
		}
	}

	err := db.First(&run, models.Run{RunID: id}).Error
	return run, err
}

func (r *RunRepository) IterateAll(callback func(run *models.Run) (bool, error)) error {
	db := r.db.Order("started_at ASC")
	return iterateAll[models.Run](db, callback)
}
