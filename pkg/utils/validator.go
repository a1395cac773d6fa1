package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

var (
	trainNumberPattern = regexp.MustCompile(`^[A-Za-z0-9]{2,10}$`)
	placeNamePattern   = regexp.MustCompile(`^[\p{L}\s-]{2,30}$`)
	emailPattern       = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
	phonePattern       = regexp.MustCompile(`^\d{10}$`)
)

// IsValidTrainNumber 车次号：2-10 位 ASCII 字母或数字
func IsValidTrainNumber(number string) bool {
	return trainNumberPattern.MatchString(number)
}

// IsValidPlaceName 城市/车站名：2-30 个字母、空白或连字符，且不能全是空白
func IsValidPlaceName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return placeNamePattern.MatchString(name)
}

// ValidateEmailFormat 校验邮箱格式。
func ValidateEmailFormat(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhoneNumber 手机号码必须是 10 位数字
func ValidatePhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsBlank 空字符串或只包含空白
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// CharLen 按字符（而非字节）计算长度
func CharLen(s string) int {
	return utf8.RuneCountInString(s)
}

// EqualFold 使用 Unicode 大小写折叠比较两个字符串
func EqualFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
