package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/repositories"
	"github.com/railway_station/pkg/metrics"
	"github.com/railway_station/pkg/utils"
)

// TrainFilter 时刻表筛选条件，三个字段要么全部为空，要么全部填写
type TrainFilter struct {
	FromCity      string
	ToCity        string
	DepartureDate *models.Date
}

func (f TrainFilter) blank() bool {
	return utils.IsBlank(f.FromCity) && utils.IsBlank(f.ToCity) && f.DepartureDate == nil
}

func (f TrainFilter) complete() bool {
	return !utils.IsBlank(f.FromCity) && !utils.IsBlank(f.ToCity) && f.DepartureDate != nil
}

// TrainService 定义了车次服务的接口
type TrainService interface {
	CreateTrain(ctx context.Context, train *models.Train) (*models.Train, error)
	UpdateTrain(ctx context.Context, id int64, train *models.Train) (*models.Train, error)
	PartialUpdateTrain(ctx context.Context, id int64, fields map[string]interface{}) (*models.Train, error)
	DeleteTrain(ctx context.Context, id int64) error
	GetTrainByID(ctx context.Context, id int64) (*models.Train, error)
	ListTrainsSorted(ctx context.Context, sortBy string) ([]models.Train, error)
	FindByFilters(ctx context.Context, filter TrainFilter, sortBy string) ([]models.Train, error)
	DistinctFromCities(ctx context.Context) ([]string, error)
	DistinctToCities(ctx context.Context) ([]string, error)
}

// trainService 是 TrainService 的实现
type trainService struct {
	repo repositories.TrainRepository
	now  func() time.Time
}

// NewTrainService 创建一个新的 trainService 实例，now 用于判断“今天”
func NewTrainService(repo repositories.TrainRepository, now func() time.Time) TrainService {
	if now == nil {
		now = time.Now
	}
	return &trainService{repo: repo, now: now}
}

func (s *trainService) today() models.Date {
	return models.DateOf(s.now())
}

// mapTrainRepoError 将仓库层错误转换为服务层错误
func mapTrainRepoError(err error, number string) error {
	switch {
	case errors.Is(err, repositories.ErrRecordNotFound):
		return ErrTrainNotFound
	case errors.Is(err, repositories.ErrDuplicateKey):
		return &DuplicateKeyError{Field: "number", Value: number}
	case errors.Is(err, repositories.ErrUnknownSortField):
		return ErrInvalidSortKey
	}
	return err
}

// CreateTrain 处理创建车次的业务逻辑
func (s *trainService) CreateTrain(ctx context.Context, train *models.Train) (*models.Train, error) {
	exists, err := s.repo.ExistsByNumber(ctx, train.Number)
	if err != nil {
		return nil, fmt.Errorf("check train number: %w", err)
	}
	if exists {
		return nil, &DuplicateKeyError{Field: "number", Value: train.Number}
	}
	if err := validateTrain(train, s.today()); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTrain(ctx, train)
	if err != nil {
		return nil, mapTrainRepoError(err, train.Number)
	}
	metrics.TrainOperations.WithLabelValues("create").Inc()
	slog.InfoContext(ctx, "train created", "id", created.ID, "number", created.Number)
	return created, nil
}

// UpdateTrain 整体更新车次，车次号变化时才重新检查唯一性
func (s *trainService) UpdateTrain(ctx context.Context, id int64, train *models.Train) (*models.Train, error) {
	existing, err := s.repo.GetTrainByID(ctx, id)
	if err != nil {
		return nil, mapTrainRepoError(err, train.Number)
	}

	if train.Number != existing.Number {
		exists, err := s.repo.ExistsByNumber(ctx, train.Number)
		if err != nil {
			return nil, fmt.Errorf("check train number: %w", err)
		}
		if exists {
			return nil, &DuplicateKeyError{Field: "number", Value: train.Number}
		}
	}
	if err := validateTrain(train, s.today()); err != nil {
		return nil, err
	}

	existing.Number = train.Number
	existing.FromCity = train.FromCity
	existing.ToCity = train.ToCity
	existing.DepartureStation = train.DepartureStation
	existing.ArrivalStation = train.ArrivalStation
	existing.DepartureDate = train.DepartureDate
	existing.DepartureTime = train.DepartureTime
	existing.ArrivalDate = train.ArrivalDate
	existing.ArrivalTime = train.ArrivalTime

	saved, err := s.repo.SaveTrain(ctx, existing)
	if err != nil {
		return nil, mapTrainRepoError(err, train.Number)
	}
	metrics.TrainOperations.WithLabelValues("update").Inc()
	slog.InfoContext(ctx, "train updated", "id", saved.ID, "number", saved.Number)
	return saved, nil
}

// patchField 描述一个可部分更新的字段：对应的列和字段级解析/校验
type patchField struct {
	column string
	parse  func(key, raw string) (interface{}, error)
}

func placePatch(rule, label string) func(key, raw string) (interface{}, error) {
	return func(key, raw string) (interface{}, error) {
		if !utils.IsValidPlaceName(raw) {
			return nil, placeNameError(key, rule, label)
		}
		return raw, nil
	}
}

func datePatch(key, raw string) (interface{}, error) {
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, invalid(key, RuleFieldType, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", key))
	}
	return d, nil
}

func clockPatch(rule string) func(key, raw string) (interface{}, error) {
	return func(key, raw string) (interface{}, error) {
		c, err := models.ParseClock(raw)
		if err != nil {
			return nil, invalid(key, rule, fmt.Sprintf("%s must be a time in HH:MM format", key))
		}
		return c, nil
	}
}

var patchableTrainFields = map[string]patchField{
	"number": {column: "number", parse: func(_, raw string) (interface{}, error) {
		if err := checkNumber(raw); err != nil {
			return nil, err
		}
		return raw, nil
	}},
	"fromCity":         {column: "from_city", parse: placePatch(RuleFromCityFormat, "Departure city")},
	"toCity":           {column: "to_city", parse: placePatch(RuleToCityFormat, "Arrival city")},
	"departureStation": {column: "departure_station", parse: placePatch(RuleDepartureStationFormat, "Departure station")},
	"arrivalStation":   {column: "arrival_station", parse: placePatch(RuleArrivalStationFormat, "Arrival station")},
	"departureDate":    {column: "departure_date", parse: datePatch},
	"arrivalDate":      {column: "arrival_date", parse: datePatch},
	"departureTime":    {column: "departure_time", parse: clockPatch(RuleDepartureTimeFormat)},
	"arrivalTime":      {column: "arrival_time", parse: clockPatch(RuleArrivalTimeFormat)},
}

// PartialUpdateTrain 只更新给定字段。每个字段单独校验，跨字段规则（城市不同、日期先后）不在这里检查。
func (s *trainService) PartialUpdateTrain(ctx context.Context, id int64, fields map[string]interface{}) (*models.Train, error) {
	existing, err := s.repo.GetTrainByID(ctx, id)
	if err != nil {
		return nil, mapTrainRepoError(err, "")
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	// 先检查未知字段，保证出错时不会应用任何修改
	for _, key := range keys {
		if _, ok := patchableTrainFields[key]; !ok {
			return nil, &InvalidFieldError{Key: key}
		}
	}

	updates := make(map[string]interface{}, len(keys))
	for _, key := range keys {
		raw, ok := fields[key].(string)
		if !ok {
			return nil, invalid(key, RuleFieldType, fmt.Sprintf("%s must be a string", key))
		}
		pf := patchableTrainFields[key]
		value, err := pf.parse(key, raw)
		if err != nil {
			return nil, err
		}
		updates[pf.column] = value
	}

	if number, ok := updates["number"].(string); ok && number != existing.Number {
		exists, err := s.repo.ExistsByNumber(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("check train number: %w", err)
		}
		if exists {
			return nil, &DuplicateKeyError{Field: "number", Value: number}
		}
	}

	if len(updates) == 0 {
		return existing, nil
	}

	number, _ := updates["number"].(string)
	updated, err := s.repo.UpdateTrainFields(ctx, id, updates)
	if err != nil {
		return nil, mapTrainRepoError(err, number)
	}
	metrics.TrainOperations.WithLabelValues("patch").Inc()
	slog.InfoContext(ctx, "train patched", "id", id, "fields", strings.Join(keys, ","))
	return updated, nil
}

// DeleteTrain 删除车次，记录不存在时同样视为成功
func (s *trainService) DeleteTrain(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTrainByID(ctx, id); err != nil {
		return fmt.Errorf("delete train %d: %w", id, err)
	}
	metrics.TrainOperations.WithLabelValues("delete").Inc()
	slog.InfoContext(ctx, "train deleted", "id", id)
	return nil
}

// GetTrainByID 不存在时返回 ErrTrainNotFound
func (s *trainService) GetTrainByID(ctx context.Context, id int64) (*models.Train, error) {
	train, err := s.repo.GetTrainByID(ctx, id)
	if err != nil {
		return nil, mapTrainRepoError(err, "")
	}
	return train, nil
}

// ListTrainsSorted 返回全部车次，按 sortBy 升序，空值按 id 排序
func (s *trainService) ListTrainsSorted(ctx context.Context, sortBy string) ([]models.Train, error) {
	trains, err := s.repo.ListTrains(ctx, sortBy)
	if err != nil {
		return nil, mapTrainRepoError(err, "")
	}
	return trains, nil
}

// FindByFilters 条件全部为空时返回全部车次；全部填写时按城市（去除首尾空白）和日期精确匹配
func (s *trainService) FindByFilters(ctx context.Context, filter TrainFilter, sortBy string) ([]models.Train, error) {
	if _, err := repositories.TrainSortColumn(sortBy); err != nil {
		return nil, ErrInvalidSortKey
	}
	if filter.blank() {
		return s.ListTrainsSorted(ctx, sortBy)
	}
	if !filter.complete() {
		return nil, ErrInvalidFilterCombination
	}

	trains, err := s.repo.FindByRouteAndDate(ctx,
		strings.TrimSpace(filter.FromCity),
		strings.TrimSpace(filter.ToCity),
		*filter.DepartureDate,
		sortBy,
	)
	if err != nil {
		return nil, mapTrainRepoError(err, "")
	}
	return trains, nil
}

// DistinctFromCities 出发城市去重列表，升序
func (s *trainService) DistinctFromCities(ctx context.Context) ([]string, error) {
	return s.repo.DistinctFromCities(ctx)
}

// DistinctToCities 到达城市去重列表，升序
func (s *trainService) DistinctToCities(ctx context.Context) ([]string, error) {
	return s.repo.DistinctToCities(ctx)
}
