package models

import (
	"github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/domain/vo"
	"github.com/cloudcopper/verity/lib/types"
	"github.com/go-playground/validator/v10"
)

type RunID = string

type Runs []*Run
type Run struct {
	RunID      RunID      `gorm:"primaryKey;not null" validate:"required,validid"`
	Target     string     `gorm:"index;not null" validate:"required"`
	Baseline   string     `gorm:"not null" validate:"required"`
	Algo       string     `gorm:"not null" validate:"required"`
	StartedAt  int64      `gorm:"index" validate:"min=0"`
	FinishedAt int64      `validate:"min=0"`
	Files      int        `validate:"min=0"`
	Size       types.Size `gorm:"int64" validate:"min=0"`
	Modified   int        `validate:"min=0"`
	New        int        `validate:"min=0"`
	Deleted    int        `validate:"min=0"`
	Unreadable int        `validate:"min=0"`
	Findings   Findings   `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE;" validate:"-"`
}

func (model *Run) Validate(val *validator.Validate) error {
	if err := val.Struct(model); err != nil {
		return err
	}
	for _, f := range model.Findings {
		if f.RunID == "" {
			f.RunID = model.RunID
			continue
		}
		if f.RunID != model.RunID {
			return errors.ErrIncorrectRunID
		}
	}
	return nil
}

// HasChanges reports whether the run detected anything
func (model *Run) HasChanges() bool {
	return model.Modified+model.New+model.Deleted+model.Unreadable != 0
}

type Findings []*Finding
type Finding struct {
	RunID  RunID         `gorm:"primaryKey;not null" validate:"required,validid"`
	Path   string        `gorm:"primaryKey;not null" validate:"required,relpath"`
	Kind   vo.ChangeKind `gorm:"index" validate:"min=1,max=4"`
	Detail string
}
