package models

import (
	"time"

	"careops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOwner UserRole = "owner"
	RoleStaff UserRole = "staff"
)

type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserInvited UserStatus = "invited"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	FullName string    `gorm:"not null" json:"fullName"`

	Role   UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status UserStatus `gorm:"type:varchar(20);default:'active';not null" json:"status"`

	WorkspaceID uuid.UUID `gorm:"type:uuid;index" json:"workspaceId"`

	LastLogin *time.Time `json:"lastLogin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Hash the password before insert so plaintext never reaches the database.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
