package models

import "time"

// Role constants for user_profile.role
const (
	RoleStaff   = "staff"
	RoleManager = "manager"
)

type UserProfile struct {
	User_Profile_ID int       `json:"user_profile_id" goqu:"skipinsert"`
	Username        string    `json:"username"`
	Password        string    `json:"-"`
	Email           string    `json:"email"`
	First_Name      string    `json:"first_name"`
	Last_Name       string    `json:"last_name"`
	Role            string    `json:"role"`
	Created_By      int       `json:"created_by"`
	Datetime_Create time.Time `json:"datetime_create" goqu:"skipinsert"`
	Updated_By      int       `json:"updated_by"`
	Datetime_Update time.Time `json:"datetime_update" goqu:"skipinsert"`
	Deleted         bool      `json:"deleted" goqu:"skipinsert"`
}

// IsManager reports whether the user carries the manager role.
func (u UserProfile) IsManager() bool {
	return u.Role == RoleManager
}

type UserProfileSignup struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	First_Name string `json:"first_name"`
	Last_Name  string `json:"last_name"`
	Role       string `json:"role"`
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
