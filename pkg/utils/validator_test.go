package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTrainNumber(t *testing.T) {
	for _, n := range []string{"01", "001A", "ABCDEFGHIJ", "z9"} {
		assert.True(t, IsValidTrainNumber(n), n)
	}
	for _, n := range []string{"", "1", "ABCDEFGHIJK", "12-3", "12 3", "№12", "ПОЕЗД1"} {
		assert.False(t, IsValidTrainNumber(n), n)
	}
}

func TestIsValidPlaceName(t *testing.T) {
	for _, n := range []string{"Москва", "Saint-Petersburg", "Нижний Новгород", "Ёлки", "Rostov-on-Don"} {
		assert.True(t, IsValidPlaceName(n), n)
	}
	for _, n := range []string{"", "M", "  ", "Moscow1", "Moscow!", "Город с очень длинным названием"} {
		assert.False(t, IsValidPlaceName(n), n)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	assert.True(t, ValidateEmailFormat("user@railway.com"))
	assert.True(t, ValidateEmailFormat("first.last-1@mail.example.ru"))
	assert.False(t, ValidateEmailFormat("user@railway"))
	assert.False(t, ValidateEmailFormat("user railway.com"))
	assert.False(t, ValidateEmailFormat("user@railway.travel"))
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.True(t, ValidatePhoneNumber("9991112233"))
	assert.False(t, ValidatePhoneNumber("+79991112233"))
	assert.False(t, ValidatePhoneNumber("999111223"))
	assert.False(t, ValidatePhoneNumber("99911122ab"))
}

func TestCharLenCountsRunes(t *testing.T) {
	assert.Equal(t, 6, CharLen("пароль"))
	assert.Equal(t, 4, CharLen("pass"))
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("Москва", "МОСКВА"))
	assert.True(t, EqualFold("moscow", "Moscow"))
	assert.False(t, EqualFold("Moscow", "Kazan"))
}
