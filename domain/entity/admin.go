package entity

import (
	"time"
)

// Admin is a privileged account able to register further admins and manage
// user block/role state. CreatorID is empty only for a bootstrap admin
// inserted directly into the store.
type Admin struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	SignupDate     time.Time `json:"signup_date"`
	CreatorID      string    `json:"creator_id,omitempty"`
}
