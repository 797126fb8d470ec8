package models

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}

// CreateProjectInput is the normalized multipart create payload. String
// fields are trimmed before validation; Files are produced by the upload
// intake, Tags by tag parsing.
type CreateProjectInput struct {
	Title        string `validate:"required"`
	Description  string `validate:"required"`
	Category     string `validate:"required"`
	AcademicYear string `validate:"required"`
	Thumbnail    string
	VideoURL     string
	Tags         []string
	Files        []FileDescriptor
}

type ProjectListParams struct {
	Status       string   `form:"status"`
	Category     string   `form:"category"`
	AcademicYear string   `form:"academicYear"`
	Tags         []string `form:"tags"`
	Search       string   `form:"search"`
	Page         int      `form:"page,default=1"`
	Limit        int      `form:"limit,default=10"`
}

type UpdateStatusRequest struct {
	Status ProjectStatus `json:"status" binding:"required"`
}

// UpdateProjectRequest is the admin edit patch. Only these three fields are
// mutable through the general update path; nil fields are left untouched.
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type AuthorSummary struct {
	ID    uint   `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CommentResponse struct {
	ID        uint        `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	User      CommentUser `json:"user"`
}

type CommentUser struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

type ProjectResponse struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Thumbnail    string            `json:"thumbnail"`
	Category     string            `json:"category"`
	AcademicYear string            `json:"academic_year"`
	Status       ProjectStatus     `json:"status"`
	Files        []FileDescriptor  `json:"files"`
	Tags         []string          `json:"tags"`
	VideoURL     *string           `json:"video_url"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Author       AuthorSummary     `json:"author"`
	Comments     []CommentResponse `json:"comments,omitempty"`
}

type RecentProject struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Author    string        `json:"author"`
	Status    ProjectStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type ProjectStats struct {
	Total    int64           `json:"total"`
	Pending  int64           `json:"pending"`
	Approved int64           `json:"approved"`
	Recent   []RecentProject `json:"recent"`
}
