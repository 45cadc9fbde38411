package dto

import (
	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
	"github.com/kavjeydev/notepod-sub000/internal/domain/services"
)

type DocumentCreateRequest struct {
	Title    string  `json:"title"`
	ParentID *string `json:"parent_id,omitempty"`
	IsFolder bool    `json:"is_folder"`
}

// DocumentMoveRequest reparents a document; a nil parent_id moves to root.
type DocumentMoveRequest struct {
	ParentID *string `json:"parent_id,omitempty"`
}

type DocumentUpdateRequest struct {
	Title             *string `json:"title,omitempty"`
	Content           *string `json:"content,omitempty"`
	CoverImage        *string `json:"cover_image,omitempty"`
	Icon              *string `json:"icon,omitempty"`
	Published         *bool   `json:"published,omitempty"`
	PublishedUserName *string `json:"published_user_name,omitempty"`
	GithubRepo        *string `json:"github_repo,omitempty"`
}

type DocumentListResponse struct {
	Docs []*entities.Document `json:"docs"`
}

type DocumentDeleteResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// CascadeResponse carries the updated target plus the id of the background
// job archiving or restoring its subtree.
type CascadeResponse struct {
	Document *entities.Document `json:"document"`
	JobID    string             `json:"job_id"`
}

type JobResponse struct {
	Job *services.CascadeJob `json:"job"`
}
