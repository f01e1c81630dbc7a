package handler

import (
	"github.com/gin-gonic/gin"

	appnotification "github.com/xiebiao/library/internal/application/notification"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// NotificationHandler 通知HTTP处理器
type NotificationHandler struct {
	listUseCase     *appnotification.ListNotificationsUseCase
	markReadUseCase *appnotification.MarkReadUseCase
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(
	listUseCase *appnotification.ListNotificationsUseCase,
	markReadUseCase *appnotification.MarkReadUseCase,
) *NotificationHandler {
	return &NotificationHandler{
		listUseCase:     listUseCase,
		markReadUseCase: markReadUseCase,
	}
}

// List 通知列表
// @Summary      通知列表
// @Description  查询当前用户的通知(按时间倒序)
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var req dto.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appnotification.ListNotificationsRequest{
		UserID:   middleware.MustGetUserID(c),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, result.Total, req.Page, req.PageSize)
}

// MarkRead 标记通知已读
// @Summary      标记通知已读
// @Description  标记一条通知为已读(幂等),只能标记自己的通知
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "通知ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "通知不存在"
// @Router       /api/v1/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.markReadUseCase.Execute(c.Request.Context(), appnotification.MarkReadRequest{
		NotificationID: id,
		UserID:         middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
