package models

import "time"

// Admin holds the OTP state for the single configured admin email.
// OTP and OTPExpires are set on send and cleared on successful verify.
type Admin struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Email      string     `gorm:"unique;not null" json:"email"`
	OTP        string     `json:"-"`
	OTPExpires *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
