package dto

import "github.com/kavjeydev/notepod-sub000/internal/domain/entities"

type LikeResponse struct {
	Like *entities.Like `json:"like,omitempty"`
}

type LikeDeleteResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}
