package deletion

import "time"

type (
	BeginRequest struct {
		AdminPhone     string `json:"admin_phone"`
		RecaptchaToken string `json:"recaptcha_token"`
	}
	VerifyRequest struct {
		Code string `json:"code"`
	}
	Attempt struct {
		AttemptID  string     `json:"attempt_id"`
		UserID     string     `json:"user_id"`
		State      string     `json:"state"`
		ExpiresAt  *time.Time `json:"expires_at,omitempty"`
		TestPhone  bool       `json:"test_phone"`
		LocalCheck bool       `json:"local_check,omitempty"`
	}
	Grant struct {
		GrantToken string    `json:"grant_token"`
		TokenType  string    `json:"token_type"`
		ExpiresAt  time.Time `json:"expires_at"`
	}
	DevCode struct {
		AdminPhone string    `json:"admin_phone"`
		UserID     string    `json:"user_id"`
		Code       string    `json:"code"`
		ExpiresAt  time.Time `json:"expires_at"`
	}
)
