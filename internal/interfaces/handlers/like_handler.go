package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/kavjeydev/notepod-sub000/internal/domain/services"
	"github.com/kavjeydev/notepod-sub000/internal/interfaces/dto"
)

type LikeHandler struct {
	likeSvc *services.LikeService
}

func NewLikeHandler(likeSvc *services.LikeService) *LikeHandler {
	return &LikeHandler{likeSvc: likeSvc}
}

func (h *LikeHandler) AddLike(c *gin.Context) {
	user := currentUser(c)

	like, err := h.likeSvc.AddLike(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.LikeResponse{Like: like})
}

func (h *LikeHandler) GetLike(c *gin.Context) {
	user := currentUser(c)

	like, err := h.likeSvc.GetLikeForUser(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.LikeResponse{Like: like})
}

func (h *LikeHandler) RemoveLike(c *gin.Context) {
	user := currentUser(c)
	likeID := c.Param("id")

	if err := h.likeSvc.RemoveLike(c.Request.Context(), user.ID, likeID); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.LikeDeleteResponse{ID: likeID, Success: true}, nil)
}
