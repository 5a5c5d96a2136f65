package models

import "time"

type User struct {
	ID               int64     `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	Password         string    `db:"password" json:"-"`
	Name             string    `db:"name" json:"name"`
	CompanyName      string    `db:"company_name" json:"company_name"`
	Timezone         string    `db:"timezone" json:"timezone"`
	ProfilePhoto     *string   `db:"profile_photo" json:"profile_photo,omitempty"`
	SubscriptionPlan string    `db:"subscription_plan" json:"subscription_plan"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type Session struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
