package domain

import "github.com/cloudcopper/verity/domain/models"

type RunRepository interface {
	Create(model *models.Run) error
	AddFinding(model *models.Finding) error
	Complete(id models.RunID, finishedAt int64, files int, size int64) error
	FindAll(flags ...interface{}) ([]*models.Run, error)
	FindByID(id models.RunID, flags ...interface{}) (*models.Run, error)
	IterateAll(func(*models.Run) (bool, error)) error
}
