package entities

import "time"

// Document is a node in the owner's folder hierarchy. A nil ParentID means
// the document sits at root level. Folders may contain children; files are
// leaves.
type Document struct {
	ID                string    `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	OwnerID           string    `json:"owner_id" db:"owner_id"`
	ParentID          *string   `json:"parent_id,omitempty" db:"parent_id"`
	IsFolder          bool      `json:"is_folder" db:"is_folder"`
	IsArchived        bool      `json:"is_archived" db:"is_archived"`
	Published         bool      `json:"published" db:"published"`
	Content           *string   `json:"content,omitempty" db:"content"`
	CoverImage        *string   `json:"cover_image,omitempty" db:"cover_image"`
	Icon              *string   `json:"icon,omitempty" db:"icon"`
	PublishedUserName *string   `json:"published_user_name,omitempty" db:"published_user_name"`
	GithubRepo        *string   `json:"github_repo,omitempty" db:"github_repo"`
	OwnerProfile      *string   `json:"owner_profile,omitempty" db:"owner_profile"`
	Likes             int64     `json:"likes" db:"likes"`
	Views             int64     `json:"views" db:"views"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
