package ports

import "gorm.io/gorm"

type DB = *gorm.DB

type WithRelationship bool
type Limit int
type Since int64

var ErrRecordNotFound = gorm.ErrRecordNotFound
