package services

import (
	"github.com/railway_station/internal/models"
	"github.com/railway_station/pkg/utils"
)

func checkNumber(number string) error {
	if !utils.IsValidTrainNumber(number) {
		return invalid("number", RuleNumberFormat, "Train number must be 2-10 latin letters or digits")
	}
	return nil
}

// placeFields 城市和车站字段的校验顺序
var placeFields = []struct {
	field string
	rule  string
	label string
	get   func(*models.Train) string
}{
	{"fromCity", RuleFromCityFormat, "Departure city", func(t *models.Train) string { return t.FromCity }},
	{"toCity", RuleToCityFormat, "Arrival city", func(t *models.Train) string { return t.ToCity }},
	{"departureStation", RuleDepartureStationFormat, "Departure station", func(t *models.Train) string { return t.DepartureStation }},
	{"arrivalStation", RuleArrivalStationFormat, "Arrival station", func(t *models.Train) string { return t.ArrivalStation }},
}

func placeNameError(field, rule, label string) error {
	return invalid(field, rule, label+" must be 2-30 letters, spaces or hyphens")
}

// validateTrain 按固定顺序检查车次（唯一性除外），返回第一条失败的规则。
// 时刻在通过校验后被规范化为 HH:MM。
func validateTrain(train *models.Train, today models.Date) error {
	if err := checkNumber(train.Number); err != nil {
		return err
	}
	for _, pf := range placeFields {
		if !utils.IsValidPlaceName(pf.get(train)) {
			return placeNameError(pf.field, pf.rule, pf.label)
		}
	}
	if utils.EqualFold(train.FromCity, train.ToCity) {
		return invalid("toCity", RuleSameCities, "Departure and arrival cities must differ")
	}

	if train.DepartureDate.IsZero() {
		return invalid("departureDate", RuleDepartureDateRequired, "Departure date is required")
	}
	if train.DepartureDate.Before(today) {
		return invalid("departureDate", RuleDepartureDatePast, "Departure date cannot be in the past")
	}
	if train.ArrivalDate.IsZero() {
		return invalid("arrivalDate", RuleArrivalDateRequired, "Arrival date is required")
	}
	if train.ArrivalDate.Before(train.DepartureDate) {
		return invalid("arrivalDate", RuleArrivalDateOrder, "Arrival date cannot be before departure date")
	}

	departureTime, err := models.ParseClock(string(train.DepartureTime))
	if err != nil {
		return invalid("departureTime", RuleDepartureTimeFormat, "Departure time must be HH:MM")
	}
	arrivalTime, err := models.ParseClock(string(train.ArrivalTime))
	if err != nil {
		return invalid("arrivalTime", RuleArrivalTimeFormat, "Arrival time must be HH:MM")
	}
	if train.ArrivalDate.Equal(train.DepartureDate) && arrivalTime.Before(departureTime) {
		return invalid("arrivalTime", RuleArrivalTimeOrder, "Arrival time cannot be before departure time on the same day")
	}
	train.DepartureTime = departureTime
	train.ArrivalTime = arrivalTime
	return nil
}
