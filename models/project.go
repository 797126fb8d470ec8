package models

import (
	"time"

	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	StatusPending  ProjectStatus = "pending"
	StatusApproved ProjectStatus = "approved"
	StatusRejected ProjectStatus = "rejected"
)

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s ProjectStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Project struct {
	ID           uint                                `json:"id" gorm:"primarykey"`
	Title        string                              `json:"title" gorm:"not null"`
	Description  string                              `json:"description" gorm:"type:text;not null"`
	Thumbnail    *string                             `json:"thumbnail"`
	AuthorID     uint                                `json:"author_id" gorm:"not null;index"`
	Author       User                                `json:"author" gorm:"foreignKey:AuthorID"`
	Category     string                              `json:"category" gorm:"not null;index"`
	AcademicYear string                              `json:"academic_year" gorm:"not null;index"`
	Status       ProjectStatus                       `json:"status" gorm:"default:'pending';index"`
	Files        datatypes.JSONSlice[FileDescriptor] `json:"files"`
	Tags         datatypes.JSONSlice[string]         `json:"tags"`
	VideoURL     *string                             `json:"video_url"`
	Comments     []Comment                           `json:"comments,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time                           `json:"created_at"`
	UpdatedAt    time.Time                           `json:"updated_at"`
}
