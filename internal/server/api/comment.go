package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/server/biz"
)

type CommentHandlersParams struct {
	fx.In

	CommentService *biz.CommentService
}

func NewCommentHandlers(params CommentHandlersParams) *CommentHandlers {
	return &CommentHandlers{
		CommentService: params.CommentService,
	}
}

type CommentHandlers struct {
	CommentService *biz.CommentService
}

type CommentRequest struct {
	DocumentID int64  `json:"documentId"`
	Content    string `json:"content" binding:"required"`
	Anchor     string `json:"anchor"`
}

func (r CommentRequest) toComment() *objects.Comment {
	return &objects.Comment{
		DocumentID: r.DocumentID,
		Content:    r.Content,
		Anchor:     r.Anchor,
	}
}

type StatusQuery struct {
	Status objects.CommentStatus `form:"status" binding:"required"`
}

// ListByDocument lists the comments of the document :id.
func (h *CommentHandlers) ListByDocument(c *gin.Context) {
	documentID, ok := bindID(c)
	if !ok {
		return
	}

	comments, err := h.CommentService.ListByDocument(c.Request.Context(), principal(c), documentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandlers) Create(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	comment, err := h.CommentService.Create(c.Request.Context(), principal(c), req.toComment())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandlers) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	comment, err := h.CommentService.Update(c.Request.Context(), principal(c), id, req.toComment())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// ChangeStatus handles PUT /:id/status?status=RESOLVED.
func (h *CommentHandlers) ChangeStatus(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var query StatusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		invalidRequest(c, err)
		return
	}

	comment, err := h.CommentService.ChangeStatus(c.Request.Context(), principal(c), id, query.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandlers) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	deleted, err := h.CommentService.Delete(c.Request.Context(), principal(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteResponse{Deleted: deleted})
}

func (h *CommentHandlers) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	comment, err := h.CommentService.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandlers) Page(c *gin.Context) {
	var req objects.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	page, err := h.CommentService.Page(c.Request.Context(), principal(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
