// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// DistrictRef is the district embedded in a user.
type DistrictRef struct {
	ID     int64  `json:"id" validate:"gt=0"`
	NameEn string `json:"name_en"`
	NameBn string `json:"name_bn"`
	Code   string `json:"code"`
}

// Name returns the localized district name.
func (d DistrictRef) Name(lang string) string { return Localize(lang, d.NameEn, d.NameBn) }

// RoleRef is a role embedded in a user or admin profile.
type RoleRef struct {
	ID          int64  `json:"id" validate:"gt=0"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// User is an admin console account.
type User struct {
	ID        int64        `json:"id" validate:"gt=0"`
	Username  string       `json:"username" validate:"required"`
	Email     string       `json:"email"`
	FullName  string       `json:"full_name"`
	Phone     string       `json:"phone,omitempty"`
	District  *DistrictRef `json:"district"`
	Roles     []RoleRef    `json:"roles" validate:"dive"`
	IsActive  bool         `json:"is_active"`
	LastLogin *time.Time   `json:"last_login"`
	CreatedAt time.Time    `json:"created_at"`
}

// GetID implements Identified.
func (u User) GetID() int64 { return u.ID }

// RoleNames returns the display names of the user's roles joined by commas.
func (u User) RoleNames() string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.DisplayName)
	}
	return strings.Join(names, ", ")
}

// Input converts the user to its write payload. The password is never
// part of a read record, so it is left blank.
func (u User) Input() UserInput {
	in := UserInput{
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		RoleIDs:  make([]int64, 0, len(u.Roles)),
		IsActive: u.IsActive,
	}
	if u.District != nil {
		id := u.District.ID
		in.DistrictID = &id
	}
	for _, r := range u.Roles {
		in.RoleIDs = append(in.RoleIDs, r.ID)
	}
	return in
}

// UserInput is the create/update payload for a user. A blank password is
// omitted so updates keep the stored one.
type UserInput struct {
	Username   string  `json:"username" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password,omitempty" validate:"omitempty,min=6"`
	FullName   string  `json:"full_name" validate:"required"`
	Phone      string  `json:"phone"`
	DistrictID *int64  `json:"districtId"`
	RoleIDs    []int64 `json:"roleIds"`
	IsActive   bool    `json:"is_active"`
}

// Permission is a named capability grouped by module.
type Permission struct {
	ID            int64  `json:"id" validate:"gt=0"`
	Name          string `json:"name"`
	DisplayNameEn string `json:"display_name_en"`
	DisplayNameBn string `json:"display_name_bn"`
	Module        string `json:"module"`
}

// GetID implements Identified.
func (p Permission) GetID() int64 { return p.ID }

// DisplayName returns the localized permission label.
func (p Permission) DisplayName(lang string) string {
	return Localize(lang, p.DisplayNameEn, p.DisplayNameBn)
}

// Role groups permissions.
type Role struct {
	ID          int64        `json:"id" validate:"gt=0"`
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions" validate:"dive"`
}

// GetID implements Identified.
func (r Role) GetID() int64 { return r.ID }

// Input converts the role to its write payload.
func (r Role) Input() RoleInput {
	in := RoleInput{
		Name:          r.Name,
		DisplayName:   r.DisplayName,
		Description:   r.Description,
		PermissionIDs: make([]int64, 0, len(r.Permissions)),
	}
	for _, p := range r.Permissions {
		in.PermissionIDs = append(in.PermissionIDs, p.ID)
	}
	return in
}

// RoleInput is the create/update payload for a role. PermissionIDs are
// associated by a separate request after the role is saved.
type RoleInput struct {
	Name          string  `json:"name" validate:"required"`
	DisplayName   string  `json:"display_name" validate:"required"`
	Description   string  `json:"description"`
	PermissionIDs []int64 `json:"permissionIds"`
}

// District is an administrative district.
type District struct {
	ID        int64     `json:"id" validate:"gt=0"`
	NameEn    string    `json:"name_en"`
	NameBn    string    `json:"name_bn"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// GetID implements Identified.
func (d District) GetID() int64 { return d.ID }

// Name returns the localized district name.
func (d District) Name(lang string) string { return Localize(lang, d.NameEn, d.NameBn) }

// Input converts the district to its write payload.
func (d District) Input() DistrictInput {
	return DistrictInput{
		NameEn:   d.NameEn,
		NameBn:   d.NameBn,
		Code:     d.Code,
		IsActive: d.IsActive,
	}
}

// DistrictInput is the create/update payload for a district.
type DistrictInput struct {
	NameEn   string `json:"name_en" validate:"required"`
	NameBn   string `json:"name_bn" validate:"required"`
	Code     string `json:"code" validate:"required"`
	IsActive bool   `json:"is_active"`
}

// AdminProfile is the account returned by a successful login.
type AdminProfile struct {
	ID       int64     `json:"id" validate:"gt=0"`
	Username string    `json:"username" validate:"required"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Roles    []RoleRef `json:"roles"`
}

// DisplayName returns the full name, falling back to the username.
func (a AdminProfile) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}

// LoginRequest is the payload of POST /admin/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the body returned by POST /admin/login.
type LoginResponse struct {
	Success bool          `json:"success"`
	Admin   *AdminProfile `json:"admin,omitempty"`
	Message string        `json:"message,omitempty"`
}

// RegisterRequest is the payload of POST /admin/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name"`
}

// PermissionAssignment is the payload of POST /roles/:id/permissions.
type PermissionAssignment struct {
	PermissionIDs []int64 `json:"permissionIds"`
}
