package repositories

import (
	"context"
	"errors"

	"github.com/railway_station/internal/models"
	"gorm.io/gorm"
)

// trainSortColumns 排序字段白名单，key 为 API 字段名，value 为数据库列名，防止 SQL 注入
var trainSortColumns = map[string]string{
	"id":               "id",
	"number":           "number",
	"fromCity":         "from_city",
	"toCity":           "to_city",
	"departureStation": "departure_station",
	"arrivalStation":   "arrival_station",
	"departureDate":    "departure_date",
	"departureTime":    "departure_time",
	"arrivalDate":      "arrival_date",
	"arrivalTime":      "arrival_time",
}

// DefaultTrainSort 未指定排序字段时使用
const DefaultTrainSort = "id"

// TrainSortColumn 返回排序字段对应的列名，空字符串按 id 排序
func TrainSortColumn(sortBy string) (string, error) {
	if sortBy == "" {
		sortBy = DefaultTrainSort
	}
	col, ok := trainSortColumns[sortBy]
	if !ok {
		return "", ErrUnknownSortField
	}
	return col, nil
}

// TrainRepository 定义了车次数据仓库的接口
type TrainRepository interface {
	CreateTrain(ctx context.Context, train *models.Train) (*models.Train, error)
	SaveTrain(ctx context.Context, train *models.Train) (*models.Train, error)
	GetTrainByID(ctx context.Context, id int64) (*models.Train, error)
	ListTrains(ctx context.Context, sortBy string) ([]models.Train, error)
	FindByRouteAndDate(ctx context.Context, fromCity, toCity string, date models.Date, sortBy string) ([]models.Train, error)
	// UpdateTrainFields 按列名更新部分字段，并返回更新后的记录
	UpdateTrainFields(ctx context.Context, id int64, updates map[string]interface{}) (*models.Train, error)
	DeleteTrainByID(ctx context.Context, id int64) error
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	DistinctFromCities(ctx context.Context) ([]string, error)
	DistinctToCities(ctx context.Context) ([]string, error)
	// PopularDirections 按车次数量降序返回最多 limit 个方向
	PopularDirections(ctx context.Context, limit int) ([]models.DirectionCount, error)
}

// gormTrainRepository 是 TrainRepository 的 GORM 实现
type gormTrainRepository struct {
	db *gorm.DB
}

// NewGormTrainRepository 创建一个新的 gormTrainRepository 实例
func NewGormTrainRepository(db *gorm.DB) TrainRepository {
	return &gormTrainRepository{db: db}
}

// translateTrainError 将唯一约束冲突转换为仓库层错误
func translateTrainError(err error) error {
	if isUniqueViolation(err) {
		if _, ok := violatedColumn(err, "number"); ok {
			return ErrTrainNumberConflict
		}
		return ErrDuplicateKey
	}
	return err
}

// CreateTrain 在数据库中创建一个新的车次记录
func (r *gormTrainRepository) CreateTrain(ctx context.Context, train *models.Train) (*models.Train, error) {
	train.ID = 0
	if err := r.db.WithContext(ctx).Create(train).Error; err != nil {
		return nil, translateTrainError(err)
	}
	return train, nil
}

// SaveTrain 保存整条车次记录（ID 必须已存在）
func (r *gormTrainRepository) SaveTrain(ctx context.Context, train *models.Train) (*models.Train, error) {
	if err := r.db.WithContext(ctx).Save(train).Error; err != nil {
		return nil, translateTrainError(err)
	}
	return train, nil
}

// GetTrainByID 根据 ID 获取车次
func (r *gormTrainRepository) GetTrainByID(ctx context.Context, id int64) (*models.Train, error) {
	var train models.Train
	if err := r.db.WithContext(ctx).First(&train, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &train, nil
}

// ListTrains 返回全部车次，按给定字段升序
func (r *gormTrainRepository) ListTrains(ctx context.Context, sortBy string) ([]models.Train, error) {
	col, err := TrainSortColumn(sortBy)
	if err != nil {
		return nil, err
	}
	trains := []models.Train{}
	if err := r.db.WithContext(ctx).Order(col + " ASC").Order("id ASC").Find(&trains).Error; err != nil {
		return nil, err
	}
	return trains, nil
}

// FindByRouteAndDate 按出发城市、到达城市和出发日期精确匹配
func (r *gormTrainRepository) FindByRouteAndDate(ctx context.Context, fromCity, toCity string, date models.Date, sortBy string) ([]models.Train, error) {
	col, err := TrainSortColumn(sortBy)
	if err != nil {
		return nil, err
	}
	trains := []models.Train{}
	err = r.db.WithContext(ctx).
		Where("from_city = ? AND to_city = ? AND departure_date = ?", fromCity, toCity, date).
		Order(col + " ASC").Order("id ASC").
		Find(&trains).Error
	if err != nil {
		return nil, err
	}
	return trains, nil
}

// UpdateTrainFields 更新车次的部分字段
func (r *gormTrainRepository) UpdateTrainFields(ctx context.Context, id int64, updates map[string]interface{}) (*models.Train, error) {
	db := r.db.WithContext(ctx)
	var train models.Train
	// 首先，检查记录是否存在
	if err := db.First(&train, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if len(updates) > 0 {
		if err := db.Model(&models.Train{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, translateTrainError(err)
		}
	}

	// 重新查询更新后的记录并返回
	if err := db.First(&train, id).Error; err != nil {
		return nil, err
	}
	return &train, nil
}

// DeleteTrainByID 删除车次，记录不存在时不视为错误
func (r *gormTrainRepository) DeleteTrainByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Train{}, id).Error
}

// ExistsByNumber 判断车次号是否已被占用
func (r *gormTrainRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Train{}).Where("number = ?", number).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormTrainRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	cities := []string{}
	err := r.db.WithContext(ctx).Model(&models.Train{}).
		Distinct(column).
		Order(column+" ASC").
		Pluck(column, &cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

// DistinctFromCities 返回去重后的出发城市，升序
func (r *gormTrainRepository) DistinctFromCities(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "from_city")
}

// DistinctToCities 返回去重后的到达城市，升序
func (r *gormTrainRepository) DistinctToCities(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "to_city")
}

// PopularDirections 相同数量时按出发城市、到达城市升序，保证结果稳定
func (r *gormTrainRepository) PopularDirections(ctx context.Context, limit int) ([]models.DirectionCount, error) {
	directions := []models.DirectionCount{}
	err := r.db.WithContext(ctx).Model(&models.Train{}).
		Select("from_city, to_city, COUNT(*) AS count").
		Group("from_city, to_city").
		Order("count DESC").Order("from_city ASC").Order("to_city ASC").
		Limit(limit).
		Scan(&directions).Error
	if err != nil {
		return nil, err
	}
	return directions, nil
}
