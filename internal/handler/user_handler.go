package handler

import (
	"net/http"
	"strconv"
	"time"

	"Hey_Blog/internal/middleware"
	"Hey_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc   *service.UserService
	posts *service.PostService
}

func NewUserHandler(svc *service.UserService, posts *service.PostService) *UserHandler {
	return &UserHandler{svc: svc, posts: posts}
}

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginReq struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ResetRequestReq struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPerformReq struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type EmailChangeReq struct {
	NewEmail string `json:"new_email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileReq struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	AboutMe  string `json:"about_me"`
}

type TokenReq struct {
	ExpirationSeconds int `json:"expiration"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userJSON(user, 0))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	count, _ := h.posts.CountByAuthor(c.Request.Context(), user.ID)
	c.JSON(http.StatusOK, userJSON(user, count))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c)
		return
	}
	var req ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	user, err := h.svc.UpdateProfile(c.Request.Context(), actor, id, req.Name, req.Location, req.AboutMe)
	if err != nil {
		writeError(c, err)
		return
	}
	count, _ := h.posts.CountByAuthor(c.Request.Context(), user.ID)
	c.JSON(http.StatusOK, userJSON(user, count))
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user, token, err := h.svc.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userJSON(user, 0)})
}

func (h *UserHandler) Logout(c *gin.Context) {
	actor := middleware.ActorFromCtx(c)
	if err := h.svc.Logout(c.Request.Context(), actor.UserID()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// IssueToken mints a stateless API token; expiration is request-configurable
// in seconds and clamped server-side.
func (h *UserHandler) IssueToken(c *gin.Context) {
	var req TokenReq
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	token, ttl, err := h.svc.IssueAPIToken(c.Request.Context(), actor.UserID(), time.Duration(req.ExpirationSeconds)*time.Second)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiration": int(ttl.Seconds())})
}

func (h *UserHandler) Confirm(c *gin.Context) {
	if err := h.svc.Confirm(c.Request.Context(), c.Param("token")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "account confirmed"})
}

func (h *UserHandler) ResendConfirmation(c *gin.Context) {
	actor := middleware.ActorFromCtx(c)
	if err := h.svc.ResendConfirmation(c.Request.Context(), actor.UserID()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "confirmation sent"})
}

func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req ResetRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}
	// same response whether or not the address is registered
	c.JSON(http.StatusOK, gin.H{"msg": "reset instructions sent if the address is registered"})
}

func (h *UserHandler) PerformPasswordReset(c *gin.Context) {
	var req ResetPerformReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), c.Param("token"), req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "password reset"})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	if err := h.svc.ChangePassword(c.Request.Context(), actor.UserID(), req.OldPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "password changed"})
}

func (h *UserHandler) RequestEmailChange(c *gin.Context) {
	var req EmailChangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	actor := middleware.ActorFromCtx(c)
	if err := h.svc.RequestEmailChange(c.Request.Context(), actor.UserID(), req.NewEmail, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "confirmation sent to the new address"})
}

func (h *UserHandler) PerformEmailChange(c *gin.Context) {
	if err := h.svc.ChangeEmail(c.Request.Context(), c.Param("token")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "email updated"})
}
