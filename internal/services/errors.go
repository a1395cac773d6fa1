package services

import (
	"errors"
	"fmt"
)

// 服务层错误分类，调用方使用 errors.Is / errors.As 判断
var (
	// ErrValidation 所有 *ValidationError 都匹配此错误
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateKey 所有 *DuplicateKeyError 都匹配此错误
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound 记录不存在
	ErrNotFound      = errors.New("not found")
	ErrTrainNotFound = fmt.Errorf("train %w", ErrNotFound)
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	// ErrInvalidFilterCombination 筛选条件只填写了一部分
	ErrInvalidFilterCombination = errors.New("fromCity, toCity and departureDate must be provided together")
	// ErrInvalidField 所有 *InvalidFieldError 都匹配此错误
	ErrInvalidField = errors.New("invalid field")
	// ErrSelfRoleChangeForbidden 管理员不能修改自己的角色
	ErrSelfRoleChangeForbidden = errors.New("admin cannot change own role")
	// ErrInvalidSortKey 排序字段未知
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// 校验规则标识
const (
	RuleNumberFormat           = "number_format"
	RuleFromCityFormat         = "from_city_format"
	RuleToCityFormat           = "to_city_format"
	RuleDepartureStationFormat = "departure_station_format"
	RuleArrivalStationFormat   = "arrival_station_format"
	RuleSameCities             = "same_cities"
	RuleDepartureDateRequired  = "departure_date_required"
	RuleDepartureDatePast      = "departure_date_past"
	RuleArrivalDateRequired    = "arrival_date_required"
	RuleArrivalDateOrder       = "arrival_date_before_departure"
	RuleDepartureTimeFormat    = "departure_time_format"
	RuleArrivalTimeFormat      = "arrival_time_format"
	RuleArrivalTimeOrder       = "arrival_time_before_departure"
	RuleFieldType              = "field_type"
	RuleDateFormat             = "date_format"

	RuleEmailRequired    = "email_required"
	RuleEmailFormat      = "email_format"
	RulePhoneFormat      = "phone_format"
	RulePasswordRequired = "password_required"
	RulePasswordLength   = "password_length"
	RuleUsernameRequired = "username_required"
	RuleUsernameLength   = "username_length"
	RuleRoleUnknown      = "role_unknown"
)

// ValidationError 描述第一条未通过的校验规则
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, rule, message string) error {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}

// DuplicateKeyError 唯一字段已被占用
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// InvalidFieldError 部分更新时出现了无法识别的字段
type InvalidFieldError struct {
	Key string
}

func (e *InvalidFieldError) Error() string {
	return "Unknown field: " + e.Key
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}
