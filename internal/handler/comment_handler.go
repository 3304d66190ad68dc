package handler

import (
	"net/http"
	"strconv"

	"Hey_Blog/internal/middleware"
	"Hey_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc     *service.CommentService
	perPage int
}

func NewCommentHandler(svc *service.CommentService, commentsPerPage int) *CommentHandler {
	return &CommentHandler{svc: svc, perPage: commentsPerPage}
}

type CommentBodyReq struct {
	Body string `json:"body" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	var req CommentBodyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	comment, err := h.svc.Create(c.Request.Context(), actor, postID, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentJSON(comment))
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	comment, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentJSON(comment))
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	page := pageParam(c)
	comments, total, err := h.svc.ListByPost(c.Request.Context(), postID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, 0, len(comments))
	for i := range comments {
		items = append(items, commentJSON(&comments[i]))
	}
	c.JSON(http.StatusOK, pageJSON(items, total, page, h.perPage))
}

// Disable and Enable are the moderation actions; the comment stays stored
// either way.
func (h *CommentHandler) Disable(c *gin.Context) {
	h.setDisabled(c, true)
}

func (h *CommentHandler) Enable(c *gin.Context) {
	h.setDisabled(c, false)
}

func (h *CommentHandler) setDisabled(c *gin.Context, disabled bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	if err := h.svc.SetDisabled(c.Request.Context(), actor, id, disabled); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disabled": disabled})
}
