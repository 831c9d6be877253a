package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/server/biz"
)

type OrganizationHandlersParams struct {
	fx.In

	OrganizationService *biz.OrganizationService
}

func NewOrganizationHandlers(params OrganizationHandlersParams) *OrganizationHandlers {
	return &OrganizationHandlers{
		OrganizationService: params.OrganizationService,
	}
}

type OrganizationHandlers struct {
	OrganizationService *biz.OrganizationService
}

type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
	MaxMembers  int    `json:"maxMembers"`
}

type UpdateOrganizationRequest struct {
	Name        string                     `json:"name" binding:"required"`
	Description string                     `json:"description"`
	Published   bool                       `json:"published"`
	MaxMembers  int                        `json:"maxMembers"`
	Status      objects.OrganizationStatus `json:"status"`
}

type AddMemberRequest struct {
	UserID int64              `json:"userId" binding:"required,min=1"`
	Role   objects.MemberRole `json:"role"`
}

type SwitchQuery struct {
	OrganizationID int64 `form:"organizationId" binding:"required,min=1"`
}

type RoleQuery struct {
	Role objects.MemberRole `form:"role" binding:"required"`
}

func (h *OrganizationHandlers) ListQuick(c *gin.Context) {
	orgs, err := h.OrganizationService.ListQuick(c.Request.Context(), principal(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, orgs)
}

func (h *OrganizationHandlers) ListOrganized(c *gin.Context) {
	orgs, err := h.OrganizationService.ListOrganized(c.Request.Context(), principal(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, orgs)
}

func (h *OrganizationHandlers) ListMembers(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	members, err := h.OrganizationService.ListMembers(c.Request.Context(), principal(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// Switch handles POST /switch?organizationId=.
func (h *OrganizationHandlers) Switch(c *gin.Context) {
	var query SwitchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		invalidRequest(c, err)
		return
	}

	user, err := h.OrganizationService.Switch(c.Request.Context(), principal(c), query.OrganizationID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.NewUserInfo(user))
}

func (h *OrganizationHandlers) AddMember(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	member, err := h.OrganizationService.AddMember(c.Request.Context(), principal(c), id, req.UserID, req.Role)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// SetMemberRole handles POST /:id/member/:userId/role?role=.
func (h *OrganizationHandlers) SetMemberRole(c *gin.Context) {
	var param MemberParam
	if err := c.ShouldBindUri(&param); err != nil {
		invalidRequest(c, err)
		return
	}

	var query RoleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		invalidRequest(c, err)
		return
	}

	member, err := h.OrganizationService.SetMemberRole(c.Request.Context(), principal(c), param.ID, param.UserID, query.Role)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *OrganizationHandlers) RemoveMember(c *gin.Context) {
	var param MemberParam
	if err := c.ShouldBindUri(&param); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.OrganizationService.RemoveMember(c.Request.Context(), principal(c), param.ID, param.UserID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrganizationHandlers) Create(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	org, err := h.OrganizationService.Create(c.Request.Context(), principal(c), biz.CreateOrganizationInput(req))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandlers) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	org, err := h.OrganizationService.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandlers) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	org, err := h.OrganizationService.Update(c.Request.Context(), principal(c), id, &objects.Organization{
		Name:        req.Name,
		Description: req.Description,
		Published:   req.Published,
		MaxMembers:  req.MaxMembers,
		Status:      req.Status,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandlers) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	deleted, err := h.OrganizationService.Delete(c.Request.Context(), principal(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteResponse{Deleted: deleted})
}
