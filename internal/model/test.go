package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Name       string         `json:"name" gorm:"not null"`
	Duration   int            `json:"duration" gorm:"not null"` // minutes
	TotalMarks int            `json:"total_marks"`              // derived, sum of question marks
	IsLive     bool           `json:"is_live" gorm:"default:false;index"`
	IsDraft    bool           `json:"is_draft" gorm:"default:true"`
	Sections   []Section      `json:"sections,omitempty" gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
