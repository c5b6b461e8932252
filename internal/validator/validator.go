package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidUsername     = errors.New("invalid username")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidCategoryName = errors.New("invalid category name")
	ErrInvalidPeriod       = errors.New("invalid budget period")
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// Budget periods accepted at write time. Weekly and monthly budgets are
// stored side by side and summed as-is when totalling.
var Periods = []string{"Monthly", "Weekly"}

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > 100 {
		return ErrInvalidCategoryName
	}
	return nil
}

func ValidatePeriod(period string) error {
	for _, p := range Periods {
		if p == period {
			return nil
		}
	}
	return ErrInvalidPeriod
}
