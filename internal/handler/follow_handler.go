package handler

import (
	"net/http"
	"strconv"

	"Hey_Blog/internal/middleware"
	"Hey_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc     *service.FollowService
	perPage int
}

func NewFollowHandler(svc *service.FollowService, followersPerPage int) *FollowHandler {
	return &FollowHandler{svc: svc, perPage: followersPerPage}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	changed, err := h.svc.Follow(c.Request.Context(), actor, targetID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	changed, err := h.svc.Unfollow(c.Request.Context(), actor, targetID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *FollowHandler) Followers(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	page := pageParam(c)
	users, total, err := h.svc.Followers(c.Request.Context(), userID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, userJSON(&users[i], 0))
	}
	c.JSON(http.StatusOK, pageJSON(items, total, page, h.perPage))
}

func (h *FollowHandler) Following(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	page := pageParam(c)
	users, total, err := h.svc.Following(c.Request.Context(), userID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, userJSON(&users[i], 0))
	}
	c.JSON(http.StatusOK, pageJSON(items, total, page, h.perPage))
}

// Relation answers both directions for a pair of users.
func (h *FollowHandler) Relation(c *gin.Context) {
	from, err1 := strconv.ParseUint(c.Query("from"), 10, 64)
	to, err2 := strconv.ParseUint(c.Query("to"), 10, 64)
	if err1 != nil || err2 != nil {
		badRequest(c)
		return
	}
	following, err := h.svc.IsFollowing(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	followedBy, err := h.svc.IsFollowedBy(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following, "followed_by": followedBy})
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
