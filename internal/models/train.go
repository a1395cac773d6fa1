package models

import "time"

// Train 对应于数据库中的 trains 表
type Train struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Number           string    `json:"number" gorm:"column:number;uniqueIndex;not null;size:10"`
	FromCity         string    `json:"fromCity" gorm:"column:from_city;not null;size:30;index:idx_trains_route"`
	ToCity           string    `json:"toCity" gorm:"column:to_city;not null;size:30;index:idx_trains_route"`
	DepartureStation string    `json:"departureStation" gorm:"column:departure_station;not null;size:30"`
	ArrivalStation   string    `json:"arrivalStation" gorm:"column:arrival_station;not null;size:30"`
	DepartureDate    Date      `json:"departureDate" gorm:"column:departure_date;type:date;not null;index"`
	DepartureTime    Clock     `json:"departureTime" gorm:"column:departure_time;not null;size:5"`
	ArrivalDate      Date      `json:"arrivalDate" gorm:"column:arrival_date;type:date;not null"`
	ArrivalTime      Clock     `json:"arrivalTime" gorm:"column:arrival_time;not null;size:5"`
	CreatedAt        time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt        time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 Train 结构体对应的数据库表名
func (Train) TableName() string {
	return "trains"
}

// TrainPayload 是创建和整体更新车次时使用的请求体
type TrainPayload struct {
	Number           string `json:"number" form:"number" binding:"required"`
	FromCity         string `json:"fromCity" form:"fromCity" binding:"required"`
	ToCity           string `json:"toCity" form:"toCity" binding:"required"`
	DepartureStation string `json:"departureStation" form:"departureStation" binding:"required"`
	ArrivalStation   string `json:"arrivalStation" form:"arrivalStation" binding:"required"`
	DepartureDate    string `json:"departureDate" form:"departureDate" binding:"required,datetime=2006-01-02"`
	DepartureTime    string `json:"departureTime" form:"departureTime" binding:"required"`
	ArrivalDate      string `json:"arrivalDate" form:"arrivalDate" binding:"required,datetime=2006-01-02"`
	ArrivalTime      string `json:"arrivalTime" form:"arrivalTime" binding:"required"`
}

// ToTrain 将请求体转换为模型，日期和时刻在这里解析
func (p TrainPayload) ToTrain() (*Train, error) {
	departureDate, err := ParseDate(p.DepartureDate)
	if err != nil {
		return nil, err
	}
	arrivalDate, err := ParseDate(p.ArrivalDate)
	if err != nil {
		return nil, err
	}
	return &Train{
		Number:           p.Number,
		FromCity:         p.FromCity,
		ToCity:           p.ToCity,
		DepartureStation: p.DepartureStation,
		ArrivalStation:   p.ArrivalStation,
		DepartureDate:    departureDate,
		DepartureTime:    Clock(p.DepartureTime),
		ArrivalDate:      arrivalDate,
		ArrivalTime:      Clock(p.ArrivalTime),
	}, nil
}

// PayloadFromTrain 用已有车次填充表单
func PayloadFromTrain(t *Train) TrainPayload {
	return TrainPayload{
		Number:           t.Number,
		FromCity:         t.FromCity,
		ToCity:           t.ToCity,
		DepartureStation: t.DepartureStation,
		ArrivalStation:   t.ArrivalStation,
		DepartureDate:    t.DepartureDate.String(),
		DepartureTime:    t.DepartureTime.String(),
		ArrivalDate:      t.ArrivalDate.String(),
		ArrivalTime:      t.ArrivalTime.String(),
	}
}

// TrainCities 汇总了出发城市和到达城市的去重列表
type TrainCities struct {
	FromCities []string `json:"fromCities"`
	ToCities   []string `json:"toCities"`
}
