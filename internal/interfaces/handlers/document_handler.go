package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kavjeydev/notepod-sub000/internal/domain/services"
	"github.com/kavjeydev/notepod-sub000/internal/interfaces/dto"
)

type DocumentHandler struct {
	documentSvc *services.DocumentService
}

func NewDocumentHandler(documentSvc *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc}
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.DocumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user := currentUser(c)

	doc, err := h.documentSvc.Create(c.Request.Context(), user.ID, user.ProfileURL, services.CreateDocumentInput{
		Title:    req.Title,
		ParentID: req.ParentID,
		IsFolder: req.IsFolder,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	countDocumentOp("create")
	respondWithSuccess(c, nil, doc)
}

func (h *DocumentHandler) GetSidebar(c *gin.Context) {
	user := currentUser(c)

	var parentID *string
	if p := c.Query("parent_id"); p != "" {
		parentID = &p
	}

	docs, err := h.documentSvc.GetSidebar(c.Request.Context(), user.ID, parentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.DocumentListResponse{Docs: docs})
}

func (h *DocumentHandler) GetTrash(c *gin.Context) {
	user := currentUser(c)

	docs, err := h.documentSvc.GetTrash(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.DocumentListResponse{Docs: docs})
}

func (h *DocumentHandler) GetSearch(c *gin.Context) {
	user := currentUser(c)

	docs, err := h.documentSvc.GetSearch(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.DocumentListResponse{Docs: docs})
}

// GetCommunity is public: every published, non-archived document.
func (h *DocumentHandler) GetCommunity(c *gin.Context) {
	docs, err := h.documentSvc.GetAllPublished(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.DocumentListResponse{Docs: docs})
}

func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID := c.Param("id")
	if docID == "" {
		respondWithError(c, http.StatusBadRequest, 400, "document ID is required")
		return
	}

	var callerID *string
	if user := currentUser(c); user != nil {
		callerID = &user.ID
	}

	doc, err := h.documentSvc.GetByID(c.Request.Context(), callerID, docID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, doc)
}

func (h *DocumentHandler) Update(c *gin.Context) {
	var req dto.DocumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user := currentUser(c)

	doc, err := h.documentSvc.Update(c.Request.Context(), user.ID, c.Param("id"), services.UpdateDocumentInput{
		Title:             req.Title,
		Content:           req.Content,
		CoverImage:        req.CoverImage,
		Icon:              req.Icon,
		Published:         req.Published,
		PublishedUserName: req.PublishedUserName,
		GithubRepo:        req.GithubRepo,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	countDocumentOp("update")
	respondWithSuccess(c, nil, doc)
}

func (h *DocumentHandler) Move(c *gin.Context) {
	var req dto.DocumentMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	user := currentUser(c)

	doc, err := h.documentSvc.MoveFile(c.Request.Context(), user.ID, c.Param("id"), req.ParentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	countDocumentOp("move")
	respondWithSuccess(c, nil, doc)
}

func (h *DocumentHandler) Archive(c *gin.Context) {
	user := currentUser(c)

	doc, job, err := h.documentSvc.Archive(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	countDocumentOp("archive")
	respondWithSuccess(c, nil, dto.CascadeResponse{Document: doc, JobID: job.ID})
}

func (h *DocumentHandler) Restore(c *gin.Context) {
	user := currentUser(c)

	doc, job, err := h.documentSvc.Restore(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	countDocumentOp("restore")
	respondWithSuccess(c, nil, dto.CascadeResponse{Document: doc, JobID: job.ID})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	docID := c.Param("id")

	if err := h.documentSvc.Remove(c.Request.Context(), user.ID, docID); err != nil {
		handleServiceError(c, err)
		return
	}

	countDocumentOp("remove")
	respondWithSuccess(c, dto.DocumentDeleteResponse{ID: docID, Success: true}, nil)
}

func (h *DocumentHandler) RemoveIcon(c *gin.Context) {
	user := currentUser(c)

	doc, err := h.documentSvc.RemoveIcon(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, doc)
}

// RecordView bumps the public view counter; no identity required.
func (h *DocumentHandler) RecordView(c *gin.Context) {
	if err := h.documentSvc.RecordView(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, nil)
}
