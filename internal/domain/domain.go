package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleDoctor  Role = "Doctor"
	RoleStaff   Role = "Staff"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDoctor, RoleStaff:
		return true
	}
	return false
}

// AllRoles lists every assignable role, in seeding order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleDoctor, RoleStaff}
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName     string `gorm:"column:full_name;type:varchar(50);not null" json:"fullName"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`

	// Role assignment is exclusive: changing a role replaces the previous one.
	Role Role `gorm:"column:role;type:varchar(30);not null;index" json:"role"`
}

func (User) TableName() string {
	return "auth.users"
}

// Claims is the identity carried by a validated token.
type Claims struct {
	UserID   uuid.UUID `json:"sub"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Roles    []string  `json:"roles"`
}

func (c *Claims) HasAnyRole(allowed ...Role) bool {
	for _, have := range c.Roles {
		for _, want := range allowed {
			if have == string(want) {
				return true
			}
		}
	}
	return false
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionLogin  AuditAction = "login"
	ActionLogout AuditAction = "logout"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	UserRole  Role      `gorm:"column:user_role;type:varchar(30);not null"`
	IPAddress string    `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	RequestID string `gorm:"column:request_id;type:varchar(50);index"`
	Changes   string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}
