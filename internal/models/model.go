package models

import (
	"time"

	"gorm.io/gorm"
)

// Model carries the storage-managed columns of every record. It mirrors
// gorm.Model with camelCase JSON names; the soft-delete marker stays
// internal.
type Model struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
