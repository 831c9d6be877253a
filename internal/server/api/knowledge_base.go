package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/server/biz"
)

type KnowledgeBaseHandlersParams struct {
	fx.In

	KnowledgeBaseService *biz.KnowledgeBaseService
}

func NewKnowledgeBaseHandlers(params KnowledgeBaseHandlersParams) *KnowledgeBaseHandlers {
	return &KnowledgeBaseHandlers{
		KnowledgeBaseService: params.KnowledgeBaseService,
	}
}

type KnowledgeBaseHandlers struct {
	KnowledgeBaseService *biz.KnowledgeBaseService
}

type KnowledgeBaseRequest struct {
	ID             int64  `json:"id"`
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	CoverURL       string `json:"coverUrl"`
	OrganizationID *int64 `json:"organizationId"`
}

func (r KnowledgeBaseRequest) toKnowledgeBase() *objects.KnowledgeBase {
	return &objects.KnowledgeBase{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		CoverURL:       r.CoverURL,
		OrganizationID: r.OrganizationID,
	}
}

// ListOrganization lists the id and name of the knowledge bases of organization :id.
func (h *KnowledgeBaseHandlers) ListOrganization(c *gin.Context) {
	orgID, ok := bindID(c)
	if !ok {
		return
	}

	kbs, err := h.KnowledgeBaseService.ListOrganizationKnowledgeBases(c.Request.Context(), principal(c), orgID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, kbs)
}

func (h *KnowledgeBaseHandlers) CreatePersonal(c *gin.Context) {
	h.create(c, h.KnowledgeBaseService.CreatePersonal)
}

func (h *KnowledgeBaseHandlers) CreateOrganization(c *gin.Context) {
	h.create(c, h.KnowledgeBaseService.CreateOrganization)
}

func (h *KnowledgeBaseHandlers) create(c *gin.Context, create createFunc[*objects.KnowledgeBase]) {
	var req KnowledgeBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	kb, err := create(c.Request.Context(), principal(c), req.toKnowledgeBase())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, kb)
}

func (h *KnowledgeBaseHandlers) ListPersonal(c *gin.Context) {
	kbs, err := h.KnowledgeBaseService.ListPersonal(c.Request.Context(), principal(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, kbs)
}

// Update handles POST /update with the id in the body.
func (h *KnowledgeBaseHandlers) Update(c *gin.Context) {
	var req KnowledgeBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	kb, err := h.KnowledgeBaseService.Update(c.Request.Context(), principal(c), req.toKnowledgeBase())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, kb)
}

func (h *KnowledgeBaseHandlers) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	kb, err := h.KnowledgeBaseService.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, kb)
}

func (h *KnowledgeBaseHandlers) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	deleted, err := h.KnowledgeBaseService.Delete(c.Request.Context(), principal(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteResponse{Deleted: deleted})
}
