package handler

import (
	"github.com/gin-gonic/gin"

	appfine "github.com/xiebiao/library/internal/application/fine"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// FineHandler 罚款HTTP处理器
type FineHandler struct {
	payFineUseCase   *appfine.PayFineUseCase
	listFinesUseCase *appfine.ListFinesUseCase
}

// NewFineHandler 创建罚款处理器
func NewFineHandler(
	payFineUseCase *appfine.PayFineUseCase,
	listFinesUseCase *appfine.ListFinesUseCase,
) *FineHandler {
	return &FineHandler{
		payFineUseCase:   payFineUseCase,
		listFinesUseCase: listFinesUseCase,
	}
}

// Pay 支付罚款
// @Summary      支付罚款
// @Description  支付一笔罚款;已支付的罚款再次支付会失败
// @Tags         罚款
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "罚款记录ID"
// @Success      200 {object} response.Response{data=appfine.PayFineResponse}
// @Failure      400 {object} response.Response "罚款已支付"
// @Failure      404 {object} response.Response "罚款记录不存在"
// @Router       /api/v1/fines/{id}/pay [put]
func (h *FineHandler) Pay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.payFineUseCase.Execute(c.Request.Context(), appfine.PayFineRequest{
		FineID:  id,
		UserID:  middleware.MustGetUserID(c),
		IsAdmin: middleware.IsAdmin(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 罚款列表
// @Summary      罚款列表
// @Description  读者查自己的罚款;all=true时查全部罚款(仅馆员)
// @Tags         罚款
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Param        all query bool false "查全部罚款(仅馆员)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/fines [get]
func (h *FineHandler) List(c *gin.Context) {
	var req dto.ListFinesRequest
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

	all := req.All && middleware.IsAdmin(c)

	result, err := h.listFinesUseCase.Execute(c.Request.Context(), appfine.ListFinesRequest{
		UserID:   middleware.MustGetUserID(c),
		All:      all,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, result.Total, req.Page, req.PageSize)
}
