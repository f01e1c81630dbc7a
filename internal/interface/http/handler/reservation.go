package handler

import (
	"github.com/gin-gonic/gin"

	appreservation "github.com/xiebiao/library/internal/application/reservation"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// ReservationHandler 借阅HTTP处理器
type ReservationHandler struct {
	reserveUseCase *appreservation.ReserveBookUseCase
	returnUseCase  *appreservation.ReturnBookUseCase
	renewUseCase   *appreservation.RenewReservationUseCase
	cancelUseCase  *appreservation.CancelReservationUseCase
	listUseCase    *appreservation.ListReservationsUseCase
	exportUseCase  *appreservation.ExportReservationsUseCase
}

// NewReservationHandler 创建借阅处理器
func NewReservationHandler(
	reserveUseCase *appreservation.ReserveBookUseCase,
	returnUseCase *appreservation.ReturnBookUseCase,
	renewUseCase *appreservation.RenewReservationUseCase,
	cancelUseCase *appreservation.CancelReservationUseCase,
	listUseCase *appreservation.ListReservationsUseCase,
	exportUseCase *appreservation.ExportReservationsUseCase,
) *ReservationHandler {
	return &ReservationHandler{
		reserveUseCase: reserveUseCase,
		returnUseCase:  returnUseCase,
		renewUseCase:   renewUseCase,
		cancelUseCase:  cancelUseCase,
		listUseCase:    listUseCase,
		exportUseCase:  exportUseCase,
	}
}

// Reserve 借书
// @Summary      借书
// @Description  读者借书,应还日期为借出日起14天;同一本书不可重复在借
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ReserveBookRequest true "借书信息"
// @Success      200 {object} response.Response{data=appreservation.ReserveBookResponse}
// @Failure      400 {object} response.Response "无可借副本或已有同书在借"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/reservations [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req dto.ReserveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.reserveUseCase.Execute(c.Request.Context(), appreservation.ReserveBookRequest{
		UserID: middleware.MustGetUserID(c),
		BookID: req.BookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Return 还书
// @Summary      还书
// @Description  归还释放副本;逾期归还按天数产生罚款(0.50欧元/天)
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=appreservation.ReturnBookResponse}
// @Failure      400 {object} response.Response "状态不允许归还"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/reservations/{id}/return [put]
func (h *ReservationHandler) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), appreservation.ReturnBookRequest{
		ReservationID: id,
		UserID:        middleware.MustGetUserID(c),
		IsAdmin:       middleware.IsAdmin(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Renew 续借
// @Summary      续借
// @Description  应还日期从当前应还日延长14天,最多续借2次
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=appreservation.RenewReservationResponse}
// @Failure      400 {object} response.Response "续借次数已达上限或状态不允许"
// @Router       /api/v1/reservations/{id}/renew [put]
func (h *ReservationHandler) Renew(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.renewUseCase.Execute(c.Request.Context(), appreservation.RenewReservationRequest{
		ReservationID: id,
		UserID:        middleware.MustGetUserID(c),
		IsAdmin:       middleware.IsAdmin(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Cancel 取消借阅
// @Summary      取消借阅
// @Description  只允许取消在借状态的记录,取消释放副本
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=appreservation.CancelReservationResponse}
// @Failure      400 {object} response.Response "状态不允许取消"
// @Router       /api/v1/reservations/{id}/cancel [put]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.cancelUseCase.Execute(c.Request.Context(), appreservation.CancelReservationRequest{
		ReservationID: id,
		UserID:        middleware.MustGetUserID(c),
		IsAdmin:       middleware.IsAdmin(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 借阅列表
// @Summary      借阅列表
// @Description  读者查自己的借阅;all=true时查全部借阅(仅馆员)
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Param        all query bool false "查全部借阅(仅馆员)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var req dto.ListReservationsRequest
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

	// 非馆员忽略all参数,只能查自己的
	all := req.All && middleware.IsAdmin(c)

	result, err := h.listUseCase.Execute(c.Request.Context(), appreservation.ListReservationsRequest{
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

// Export 导出借阅记录
// @Summary      导出借阅记录
// @Description  馆员导出全部借阅记录为JSON文件(含读者姓名与图书标题)
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Success      200 {string} string "JSON文件"
// @Router       /api/v1/reservations/export [get]
func (h *ReservationHandler) Export(c *gin.Context) {
	data, err := h.exportUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reservations.json"`)
	c.Data(200, "application/json; charset=utf-8", data)
}
