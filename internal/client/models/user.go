package models

import "net/mail"

const (
	RoleAdmin      = "Admin"
	RoleManager    = "Manager"
	RoleTechnician = "Technician"

	UserActive   = "Active"
	UserPending  = "Pending Invitation"
	UserDisabled = "Disabled"
)

var (
	UserRoles    = []string{RoleAdmin, RoleManager, RoleTechnician}
	UserStatuses = []string{UserActive, UserPending, UserDisabled}
)

type User struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	AssignedStores []string `json:"assignedStores"`
	LastLogin      string   `json:"lastLogin,omitempty"`
	Status         string   `json:"status"`
	// Password is only sent when inviting a new user.
	Password string `json:"password,omitempty" export:"-"`
}

func (u User) Validate() error {
	var c checker
	c.require("name", u.Name)
	c.require("email", u.Email)
	c.require("role", u.Role)
	if u.Email != "" {
		_, err := mail.ParseAddress(u.Email)
		c.check("email", err == nil)
	}
	return c.err()
}

func NewUser() User {
	return User{Status: UserPending, AssignedStores: []string{}}
}

func SampleUsers() []User {
	return []User{
		{ID: "1", Name: "John Doe", Email: "john.doe@company.com", Role: RoleAdmin, AssignedStores: []string{"Downtown Store", "Mall Branch"}, LastLogin: "2024-01-15 14:30:25", Status: UserActive},
		{ID: "2", Name: "Sarah Johnson", Email: "sarah.johnson@company.com", Role: RoleManager, AssignedStores: []string{"Mall Branch"}, LastLogin: "2024-01-15 13:45:10", Status: UserActive},
		{ID: "3", Name: "Mike Davis", Email: "mike.davis@company.com", Role: RoleManager, AssignedStores: []string{"Airport Terminal"}, LastLogin: "2024-01-14 16:20:30", Status: UserActive},
		{ID: "4", Name: "Lisa Wilson", Email: "lisa.wilson@company.com", Role: RoleTechnician, AssignedStores: []string{"Suburban Outlet"}, LastLogin: "2024-01-15 09:15:45", Status: UserActive},
		{ID: "5", Name: "David Brown", Email: "david.brown@company.com", Role: RoleManager, AssignedStores: []string{}, LastLogin: "Never", Status: UserPending},
		{ID: "6", Name: "Emma Taylor", Email: "emma.taylor@company.com", Role: RoleTechnician, AssignedStores: []string{"Downtown Store"}, LastLogin: "2024-01-10 11:30:20", Status: UserDisabled},
	}
}
