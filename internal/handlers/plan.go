package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/planweave/planweave-backend/internal/platform/logger"
	"github.com/planweave/planweave-backend/internal/services"
)

type PlanHandler struct {
	log         *logger.Logger
	planService services.PlanGenerationService
}

func NewPlanHandler(log *logger.Logger, planService services.PlanGenerationService) *PlanHandler {
	return &PlanHandler{
		log:         log.With("handler", "PlanHandler"),
		planService: planService,
	}
}

type generatePlanRequest struct {
	Technology string `json:"technology"`
}

func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_member_id", fmt.Errorf("member id must be a uuid"))
		return
	}
	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), memberID, req.Technology)
	if err != nil {
		h.log.Error("GeneratePlan failed", "error", err, "member_id", memberID.String())
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"plan": plan})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("planID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_plan_id", fmt.Errorf("plan id must be a uuid"))
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": plan})
}

func (h *PlanHandler) ListMemberPlans(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_member_id", fmt.Errorf("member id must be a uuid"))
		return
	}
	plans, err := h.planService.ListMemberPlans(c.Request.Context(), memberID)
	if err != nil {
		h.log.Error("ListMemberPlans failed", "error", err, "member_id", memberID.String())
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"plans": plans})
}
