package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/export"
	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/services"
	"github.com/railway_station/pkg/utils"
)

const (
	allowCollection = "GET, POST, HEAD, OPTIONS"
	allowItem       = "GET, PUT, PATCH, DELETE, HEAD, OPTIONS"
)

// TrainHandler 封装了车次 JSON API 的 HTTP 处理逻辑
type TrainHandler struct {
	service services.TrainService
}

// NewTrainHandler 创建一个新的 TrainHandler 实例
func NewTrainHandler(service services.TrainService) *TrainHandler {
	return &TrainHandler{service: service}
}

// TrainListQuery 时刻表查询参数
type TrainListQuery struct {
	FromCity      string `form:"fromCity"`
	ToCity        string `form:"toCity"`
	DepartureDate string `form:"departureDate"`
	SortBy        string `form:"sortBy"`
}

// filter 解析日期，返回服务层的筛选条件
func (q TrainListQuery) filter() (services.TrainFilter, error) {
	date, err := parseOptionalDate(q.DepartureDate)
	if err != nil {
		return services.TrainFilter{}, err
	}
	return services.TrainFilter{FromCity: q.FromCity, ToCity: q.ToCity, DepartureDate: date}, nil
}

func (h *TrainHandler) findTrains(c *gin.Context) ([]models.Train, bool) {
	var query TrainListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondValidationError(c, utils.BindingErrorDetails(err))
		return nil, false
	}
	filter, err := query.filter()
	if err != nil {
		utils.RespondValidationError(c, gin.H{"departureDate": err.Error()})
		return nil, false
	}
	trains, err := h.service.FindByFilters(c.Request.Context(), filter, query.SortBy)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return trains, true
}

// ListTrains godoc
// @Summary 获取车次列表
// @Description 三个筛选条件全部为空时返回全部车次；全部填写时按出发城市、到达城市和出发日期精确匹配
// @Tags Trains
// @Produce json
// @Param fromCity query string false "出发城市"
// @Param toCity query string false "到达城市"
// @Param departureDate query string false "出发日期 (YYYY-MM-DD)"
// @Param sortBy query string false "排序字段 (id, number, fromCity, toCity, departureDate, departureTime ...)" default(id)
// @Success 200 {object} utils.SuccessResponse{data=[]models.Train} "车次列表"
// @Failure 400 {object} utils.APIErrorResponse "筛选条件不完整或排序字段无效"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Router /trains [get]
// @Security BearerAuth
func (h *TrainHandler) ListTrains(c *gin.Context) {
	trains, ok := h.findTrains(c)
	if !ok {
		return
	}
	utils.RespondSuccess(c, http.StatusOK, trains, "")
}

// GetTrain godoc
// @Summary 获取单个车次
// @Tags Trains
// @Produce json
// @Param id path int true "车次ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Train}
// @Failure 404 {object} utils.APIErrorResponse "车次不存在"
// @Router /trains/{id} [get]
// @Security BearerAuth
func (h *TrainHandler) GetTrain(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	train, err := h.service.GetTrainByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, train, "")
}

// CreateTrain godoc
// @Summary 新增车次
// @Description 车次号唯一；城市、车站、日期和时刻需满足校验规则
// @Tags Trains
// @Accept json
// @Produce json
// @Param train body models.TrainPayload true "车次信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Train} "创建成功的车次"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 403 {object} utils.APIErrorResponse "需要管理员权限"
// @Failure 409 {object} utils.APIErrorResponse "车次号已存在"
// @Router /trains [post]
// @Security BearerAuth
func (h *TrainHandler) CreateTrain(c *gin.Context) {
	var payload models.TrainPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, utils.BindingErrorDetails(err))
		return
	}
	train, err := payload.ToTrain()
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.CreateTrain(c.Request.Context(), train)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "Train created")
}

// UpdateTrain godoc
// @Summary 整体更新车次
// @Tags Trains
// @Accept json
// @Produce json
// @Param id path int true "车次ID"
// @Param train body models.TrainPayload true "车次信息"
// @Success 200 {object} utils.SuccessResponse{data=models.Train}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 404 {object} utils.APIErrorResponse "车次不存在"
// @Failure 409 {object} utils.APIErrorResponse "车次号已存在"
// @Router /trains/{id} [put]
// @Security BearerAuth
func (h *TrainHandler) UpdateTrain(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload models.TrainPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, utils.BindingErrorDetails(err))
		return
	}
	train, err := payload.ToTrain()
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateTrain(c.Request.Context(), id, train)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "Train updated")
}

// PatchTrain godoc
// @Summary 部分更新车次
// @Description 只更新请求体中出现的字段，值均为字符串；未知字段返回 400
// @Tags Trains
// @Accept json
// @Produce json
// @Param id path int true "车次ID"
// @Param fields body map[string]string true "要更新的字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Train}
// @Failure 400 {object} utils.APIErrorResponse "未知字段或字段格式错误"
// @Failure 404 {object} utils.APIErrorResponse "车次不存在"
// @Failure 409 {object} utils.APIErrorResponse "车次号已存在"
// @Router /trains/{id} [patch]
// @Security BearerAuth
func (h *TrainHandler) PatchTrain(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.PartialUpdateTrain(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "Train updated")
}

// DeleteTrain godoc
// @Summary 删除车次
// @Description 车次不存在时同样返回 204
// @Tags Trains
// @Param id path int true "车次ID"
// @Success 204 "删除成功"
// @Failure 403 {object} utils.APIErrorResponse "需要管理员权限"
// @Router /trains/{id} [delete]
// @Security BearerAuth
func (h *TrainHandler) DeleteTrain(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteTrain(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCities godoc
// @Summary 出发城市和到达城市列表
// @Tags Trains
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=models.TrainCities}
// @Router /trains/cities [get]
// @Security BearerAuth
func (h *TrainHandler) ListCities(c *gin.Context) {
	ctx := c.Request.Context()
	from, err := h.service.DistinctFromCities(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	to, err := h.service.DistinctToCities(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, models.TrainCities{FromCities: from, ToCities: to}, "")
}

// ExportXML godoc
// @Summary 导出 XML 时刻表
// @Description 支持与列表接口相同的筛选和排序参数
// @Tags Trains
// @Produce xml
// @Param fromCity query string false "出发城市"
// @Param toCity query string false "到达城市"
// @Param departureDate query string false "出发日期 (YYYY-MM-DD)"
// @Param sortBy query string false "排序字段" default(id)
// @Success 200 {string} string "XML 文档"
// @Failure 400 {object} utils.APIErrorResponse "筛选条件不完整或排序字段无效"
// @Router /trains/export.xml [get]
// @Security BearerAuth
func (h *TrainHandler) ExportXML(c *gin.Context) {
	trains, ok := h.findTrains(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteTimetableXML(&buf, trains, time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="timetable.xml"`)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

// HeadTrains 只返回状态码，用于探测集合是否可用
func (h *TrainHandler) HeadTrains(c *gin.Context) {
	c.Status(http.StatusOK)
}

// OptionsTrains 返回集合支持的方法
func (h *TrainHandler) OptionsTrains(c *gin.Context) {
	c.Header("Allow", allowCollection)
	c.Status(http.StatusOK)
}

// OptionsTrain 返回单个车次支持的方法
func (h *TrainHandler) OptionsTrain(c *gin.Context) {
	c.Header("Allow", allowItem)
	c.Status(http.StatusOK)
}
