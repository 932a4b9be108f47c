package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sewasew/census-backend/internal/census"
	"github.com/sewasew/census-backend/internal/logger"
	"github.com/sewasew/census-backend/internal/services"
)

type SubmissionHandler struct {
	log               *logger.Logger
	submissionService services.SubmissionService
}

func NewSubmissionHandler(log *logger.Logger, submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		log:               log.With("handler", "SubmissionHandler"),
		submissionService: submissionService,
	}
}

// Create accepts one household + N family members and commits them as a
// single unit. Validation failures answer 400 before anything is written;
// store failures answer 500 after the transaction rolled back.
func (sh *SubmissionHandler) Create(c *gin.Context) {
	var req struct {
		HouseholdLocation string             `json:"householdLocation"`
		FamilyMembers     []census.RawMember `json:"familyMembers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, err := sh.submissionService.Submit(c.Request.Context(), req.HouseholdLocation, req.FamilyMembers)
	if err != nil {
		if census.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to register household",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Household and family members registered successfully",
	})
}
