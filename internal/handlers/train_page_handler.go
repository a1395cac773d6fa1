package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/services"
)

// TrainPageHandler 渲染时刻表相关的网页
type TrainPageHandler struct {
	service services.TrainService
}

// NewTrainPageHandler 创建一个新的 TrainPageHandler 实例
func NewTrainPageHandler(service services.TrainService) *TrainPageHandler {
	return &TrainPageHandler{service: service}
}

// listRedirect 删除后回到列表页，并保留原来的筛选和排序条件
func listRedirect(query TrainListQuery) string {
	values := url.Values{}
	if query.FromCity != "" {
		values.Set("fromCity", query.FromCity)
	}
	if query.ToCity != "" {
		values.Set("toCity", query.ToCity)
	}
	if query.DepartureDate != "" {
		values.Set("departureDate", query.DepartureDate)
	}
	if query.SortBy != "" {
		values.Set("sortBy", query.SortBy)
	}
	if len(values) == 0 {
		return "/"
	}
	return "/?" + values.Encode()
}

// Index 首页：时刻表、筛选表单和排序
func (h *TrainPageHandler) Index(c *gin.Context) {
	var query TrainListQuery
	bindErr := c.ShouldBindQuery(&query)
	if query.SortBy == "" {
		query.SortBy = "id"
	}

	ctx := c.Request.Context()
	data := gin.H{"Title": "Timetable", "Query": query}
	if from, err := h.service.DistinctFromCities(ctx); err == nil {
		data["FromCities"] = from
	}
	if to, err := h.service.DistinctToCities(ctx); err == nil {
		data["ToCities"] = to
	}
	switch c.Query("status") {
	case "created":
		data["Success"] = "Train added"
	case "updated":
		data["Success"] = "Train updated"
	}

	status := http.StatusOK
	var (
		trains []models.Train
		err    error
	)
	if bindErr != nil {
		err = &services.ValidationError{Field: "query", Rule: services.RuleFieldType, Message: "Invalid filter parameters"}
	} else {
		trains, err = h.listTrains(c, query)
	}
	if err != nil {
		status, data["Error"] = errorStatus(err)
		trains = []models.Train{}
	}
	data["Trains"] = trains
	c.HTML(status, "index.html", viewData(c, data))
}

func (h *TrainPageHandler) listTrains(c *gin.Context, query TrainListQuery) ([]models.Train, error) {
	filter, err := query.filter()
	if err != nil {
		return nil, &services.ValidationError{Field: "departureDate", Rule: services.RuleDateFormat, Message: "departureDate must use YYYY-MM-DD"}
	}
	return h.service.FindByFilters(c.Request.Context(), filter, query.SortBy)
}

func (h *TrainPageHandler) renderForm(c *gin.Context, status int, action string, form models.TrainPayload, message string) {
	title := "Add train"
	if action != "/add-train" {
		title = "Edit train"
	}
	data := gin.H{"Title": title, "Action": action, "Form": form}
	if message != "" {
		data["Error"] = message
	}
	c.HTML(status, "train_form.html", viewData(c, data))
}

// AddForm 新增车次表单
func (h *TrainPageHandler) AddForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "/add-train", models.TrainPayload{}, "")
}

// AddTrain 提交新增车次表单，失败时带着已填写的内容重新渲染
func (h *TrainPageHandler) AddTrain(c *gin.Context) {
	var form models.TrainPayload
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, "/add-train", form, "All fields are required; dates use YYYY-MM-DD")
		return
	}
	train, err := form.ToTrain()
	if err != nil {
		h.renderForm(c, http.StatusBadRequest, "/add-train", form, err.Error())
		return
	}
	if _, err := h.service.CreateTrain(c.Request.Context(), train); err != nil {
		status, message := errorStatus(err)
		h.renderForm(c, status, "/add-train", form, message)
		return
	}
	c.Redirect(http.StatusFound, "/?status=created")
}

// UpdateForm 编辑车次表单，车次不存在时渲染错误页
func (h *TrainPageHandler) UpdateForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid train id")
		return
	}
	train, err := h.service.GetTrainByID(c.Request.Context(), id)
	if err != nil {
		status, message := errorStatus(err)
		h.renderError(c, status, message)
		return
	}
	h.renderForm(c, http.StatusOK, "/update-train/"+c.Param("id"), models.PayloadFromTrain(train), "")
}

// UpdateTrain 提交编辑表单
func (h *TrainPageHandler) UpdateTrain(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid train id")
		return
	}
	action := "/update-train/" + c.Param("id")
	var form models.TrainPayload
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, action, form, "All fields are required; dates use YYYY-MM-DD")
		return
	}
	train, err := form.ToTrain()
	if err != nil {
		h.renderForm(c, http.StatusBadRequest, action, form, err.Error())
		return
	}
	if _, err := h.service.UpdateTrain(c.Request.Context(), id, train); err != nil {
		status, message := errorStatus(err)
		h.renderForm(c, status, action, form, message)
		return
	}
	c.Redirect(http.StatusFound, "/?status=updated")
}

// DeleteTrain 删除后带着原有筛选条件回到列表页
func (h *TrainPageHandler) DeleteTrain(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid train id")
		return
	}
	// 筛选条件只用于拼回跳转地址，解析失败时回到未筛选的列表
	var query TrainListQuery
	if err := c.ShouldBind(&query); err != nil {
		query = TrainListQuery{}
	}

	if err := h.service.DeleteTrain(c.Request.Context(), id); err != nil {
		status, message := errorStatus(err)
		h.renderError(c, status, message)
		return
	}
	c.Redirect(http.StatusFound, listRedirect(query))
}

// About 关于页面
func (h *TrainPageHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", viewData(c, gin.H{"Title": "About"}))
}

func (h *TrainPageHandler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", viewData(c, gin.H{"Title": http.StatusText(status), "Message": message}))
}
