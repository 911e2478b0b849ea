package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity record. The password field always holds a bcrypt
// hash, never the plain text.
type User struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	UserName       string    `json:"userName"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Role           Role      `json:"role"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ComparePassword checks a candidate password against the stored hash.
func (u *User) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	FirstName      *string
	LastName       *string
	ProfilePicture *string
}
