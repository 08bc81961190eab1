package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"user-admin-dashboard/internal/application/authflow"
)

var (
	e164Re = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
	codeRe = regexp.MustCompile(`^\d{6}$`)
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ValidatePhone normalizes an admin phone number. An empty value is passed
// through so the flow can reject it.
func ValidatePhone(s string) (string, error) {
	phone := authflow.NormalizePhone(s)
	if phone == "" {
		return "", nil
	}
	if !e164Re.MatchString(phone) {
		return "", errors.New("must be in E.164 format (e.g., +919876543210)")
	}
	return phone, nil
}

func ValidateCode(s string) error {
	code := strings.TrimSpace(s)
	if code == "" {
		return nil
	}
	if !codeRe.MatchString(code) {
		return errors.New("code must be 6 digits")
	}
	return nil
}

// ValidateUserID accepts any non-blank id; stored ids may contain spaces.
func ValidateUserID(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
