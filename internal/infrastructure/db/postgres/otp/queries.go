package otp

const (
	InsertRequest = `
		INSERT INTO otp_requests (id, user_phone, admin_phone, otp, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	// ConsumeRequest deletes the newest match in one statement so two
	// concurrent verifications cannot both succeed.
	ConsumeRequest = `
		DELETE FROM otp_requests
		WHERE id = (
			SELECT id FROM otp_requests
			WHERE user_phone = $1 AND admin_phone = $2 AND otp = $3
			ORDER BY created_at DESC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id::text, user_phone, admin_phone, otp, expires_at, created_at
	`
	SelectLatestByAdmin = `
		SELECT id::text, user_phone, admin_phone, otp, expires_at, created_at
		FROM otp_requests
		WHERE admin_phone = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
)
