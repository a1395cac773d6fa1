package models

// DirectionCount 是某个方向（出发城市 → 到达城市）的车次数量
type DirectionCount struct {
	Direction string `json:"direction" gorm:"-"`
	FromCity  string `json:"fromCity" gorm:"column:from_city"`
	ToCity    string `json:"toCity" gorm:"column:to_city"`
	Count     int64  `json:"count" gorm:"column:count"`
}

// SystemStats 是统计页面/接口的数据
type SystemStats struct {
	TotalUsers        int64            `json:"totalUsers"`
	PopularDirections []DirectionCount `json:"popularDirections"`
}
