package handler

import (
	"yatube/internal/middleware"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(svc *service.FollowService) *FollowHandler {
	return &FollowHandler{svc: svc}
}

// Follow 关注后跳回个人页
func (h *FollowHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	if _, err := h.svc.Follow(c.Request.Context(), middleware.UserID(c), username); err != nil {
		fail(c, err)
		return
	}
	redirect(c, profileURL(username))
}

// Unfollow 取消关注后跳回个人页
func (h *FollowHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if _, err := h.svc.Unfollow(c.Request.Context(), middleware.UserID(c), username); err != nil {
		fail(c, err)
		return
	}
	redirect(c, profileURL(username))
}
