package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/planweave/planweave-backend/internal/platform/logger"
	"github.com/planweave/planweave-backend/internal/services"
)

type MemberHandler struct {
	log           *logger.Logger
	memberService services.MemberService
}

func NewMemberHandler(log *logger.Logger, memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		log:           log.With("handler", "MemberHandler"),
		memberService: memberService,
	}
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	var in services.CreateMemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	member, err := h.memberService.CreateMember(c.Request.Context(), in)
	if err != nil {
		h.log.Error("CreateMember failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"member": member})
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_member_id", fmt.Errorf("member id must be a uuid"))
		return
	}
	member, err := h.memberService.GetMember(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"member": member})
}
