package handler

import (
	"net/http"
	"strconv"

	"Hey_Blog/internal/middleware"
	"Hey_Blog/internal/model"
	"Hey_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc     *service.PostService
	perPage int
}

func NewPostHandler(svc *service.PostService, postsPerPage int) *PostHandler {
	return &PostHandler{svc: svc, perPage: postsPerPage}
}

type PostBodyReq struct {
	Body string `json:"body" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostBodyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	post, err := h.svc.Create(c.Request.Context(), actor, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postJSON(post, 0))
}

func (h *PostHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	var req PostBodyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	post, err := h.svc.Update(c.Request.Context(), actor, id, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	count, _ := h.svc.CountComments(c.Request.Context(), post.ID)
	c.JSON(http.StatusOK, postJSON(post, count))
}

func (h *PostHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	post, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	count, _ := h.svc.CountComments(c.Request.Context(), post.ID)
	c.JSON(http.StatusOK, postJSON(post, count))
}

func (h *PostHandler) List(c *gin.Context) {
	page := pageParam(c)
	posts, total, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageJSON(h.items(c, posts), total, page, h.perPage))
}

func (h *PostHandler) ListByAuthor(c *gin.Context) {
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	page := pageParam(c)
	posts, total, err := h.svc.ListByAuthor(c.Request.Context(), authorID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageJSON(h.items(c, posts), total, page, h.perPage))
}

// Timeline lists posts from everyone the user follows, own posts included
// via the self-edge.
func (h *PostHandler) Timeline(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	page := pageParam(c)
	posts, total, err := h.svc.Timeline(c.Request.Context(), userID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageJSON(h.items(c, posts), total, page, h.perPage))
}

func (h *PostHandler) items(c *gin.Context, posts []model.Post) []gin.H {
	items := make([]gin.H, 0, len(posts))
	for i := range posts {
		count, _ := h.svc.CountComments(c.Request.Context(), posts[i].ID)
		items = append(items, postJSON(&posts[i], count))
	}
	return items
}
