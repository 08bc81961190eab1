package user

const (
	SelectUsers = `
		SELECT id, name, firm, city, district, dob, app_install_date, email, phone, has_full_access, status, created_at, last_login_at
		FROM users
		ORDER BY created_at DESC, id
	`
	DeleteUserByID = `DELETE FROM users WHERE id = $1`
	UpsertUser     = `
		INSERT INTO users (id, name, firm, city, district, dob, app_install_date, email, phone, has_full_access, status, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    firm = EXCLUDED.firm,
		    city = EXCLUDED.city,
		    district = EXCLUDED.district,
		    dob = EXCLUDED.dob,
		    app_install_date = EXCLUDED.app_install_date,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    has_full_access = EXCLUDED.has_full_access,
		    status = EXCLUDED.status,
		    created_at = EXCLUDED.created_at,
		    last_login_at = EXCLUDED.last_login_at
	`
)
