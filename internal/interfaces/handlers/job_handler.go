package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/kavjeydev/notepod-sub000/internal/domain/services"
	"github.com/kavjeydev/notepod-sub000/internal/interfaces/dto"
)

// JobHandler lets clients poll cascade jobs started by archive/restore.
type JobHandler struct {
	jobs services.JobStore
}

func NewJobHandler(jobs services.JobStore) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func (h *JobHandler) GetByID(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.JobResponse{Job: job})
}
