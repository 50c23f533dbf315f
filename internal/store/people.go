// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/password"
	"github.com/olegiv/protidin-go/internal/util"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown user,
// an inactive account or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrPasswordRequired is returned when a user is created without a password.
var ErrPasswordRequired = errors.New("password is required")

const userSelect = `SELECT u.id, u.username, u.email, u.full_name, u.phone, u.is_active, u.last_login, u.created_at,
	d.id, d.name_en, d.name_bn, d.code
FROM users u LEFT JOIN districts d ON d.id = u.district_id`

func scanUser(row scanner) (model.User, error) {
	var (
		u         model.User
		lastLogin sql.NullTime
		distID    sql.NullInt64
		distEn    sql.NullString
		distBn    sql.NullString
		distCode  sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Phone, &u.IsActive, &lastLogin, &u.CreatedAt,
		&distID, &distEn, &distBn, &distCode)
	if err != nil {
		return u, err
	}
	u.LastLogin = util.TimePtr(lastLogin)
	if distID.Valid {
		u.District = &model.DistrictRef{ID: distID.Int64, NameEn: distEn.String, NameBn: distBn.String, Code: distCode.String}
	}
	u.Roles = []model.RoleRef{}
	return u, nil
}

// userRoles returns the roles of the given users keyed by user id. With no
// ids it returns the roles of every user.
func (s *Store) userRoles(ctx context.Context, ids ...int64) (map[int64][]model.RoleRef, error) {
	query := `SELECT ur.user_id, r.id, r.name, r.display_name
		FROM user_roles ur JOIN roles r ON r.id = ur.role_id`
	args := make([]any, 0, len(ids))
	if len(ids) > 0 {
		query += " WHERE ur.user_id IN (" + placeholders(len(ids)) + ")"
		for _, id := range ids {
			args = append(args, id)
		}
	}
	query += " ORDER BY r.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing user roles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64][]model.RoleRef)
	for rows.Next() {
		var (
			userID int64
			ref    model.RoleRef
		)
		if err := rows.Scan(&userID, &ref.ID, &ref.Name, &ref.DisplayName); err != nil {
			return nil, fmt.Errorf("scanning user roles: %w", err)
		}
		out[userID] = append(out[userID], ref)
	}
	return out, rows.Err()
}

// ListUsers returns all users with their district and roles.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, userSelect+" ORDER BY u.id")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	users, err := collect(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}

	roles, err := s.userRoles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if refs, ok := roles[users[i].ID]; ok {
			users[i].Roles = refs
		}
	}
	return users, nil
}

// GetUser returns a user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, userSelect+" WHERE u.id = ?", id))
	if err != nil {
		return u, readErr("getting user", err)
	}
	roles, err := s.userRoles(ctx, id)
	if err != nil {
		return u, err
	}
	if refs, ok := roles[id]; ok {
		u.Roles = refs
	}
	return u, nil
}

// CreateUser stores a new user with a hashed password and its roles.
func (s *Store) CreateUser(ctx context.Context, in model.UserInput) (model.User, error) {
	if in.Password == "" {
		return model.User{}, ErrPasswordRequired
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	var id int64
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		id, err = insertID(ctx, tx, "creating user",
			`INSERT INTO users (username, email, password_hash, full_name, phone, district_id, is_active, created_at)
			VALUES (`+placeholders(8)+`)`,
			in.Username, in.Email, hash, in.FullName, in.Phone, util.NullInt64FromPtr(in.DistrictID), in.IsActive, s.now())
		if err != nil {
			return err
		}
		return replaceLinks(ctx, tx, "user_roles", "user_id", "role_id", id, in.RoleIDs)
	})
	if err != nil {
		return model.User{}, err
	}
	return s.GetUser(ctx, id)
}

// UpdateUser replaces a user and its roles. A blank password keeps the
// stored one.
func (s *Store) UpdateUser(ctx context.Context, id int64, in model.UserInput) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET username = ?, email = ?, full_name = ?, phone = ?, district_id = ?, is_active = ? WHERE id = ?`,
			in.Username, in.Email, in.FullName, in.Phone, util.NullInt64FromPtr(in.DistrictID), in.IsActive, id)
		if err := affectedOne("updating user", res, err); err != nil {
			return err
		}
		if in.Password != "" {
			hash, err := password.Hash(in.Password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, id); err != nil {
				return fmt.Errorf("updating password: %w", err)
			}
		}
		return replaceLinks(ctx, tx, "user_roles", "user_id", "role_id", id, in.RoleIDs)
	})
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return affectedOne("deleting user", res, err)
}

// Register creates an active user without roles.
func (s *Store) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	return s.CreateUser(ctx, model.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		IsActive: true,
	})
}

// Authenticate checks a username (or email) and password and records the
// login. Hashes made with older parameters are upgraded in place.
func (s *Store) Authenticate(ctx context.Context, login, plain string) (model.AdminProfile, error) {
	var (
		profile  model.AdminProfile
		hash     string
		isActive bool
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, full_name, password_hash, is_active FROM users WHERE username = ? OR email = ?`,
		login, login).Scan(&profile.ID, &profile.Username, &profile.Email, &profile.FullName, &hash, &isActive)
	if errors.Is(err, sql.ErrNoRows) {
		return profile, ErrInvalidCredentials
	}
	if err != nil {
		return profile, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := password.Verify(plain, hash)
	if err != nil {
		return profile, fmt.Errorf("verifying password: %w", err)
	}
	if !ok || !isActive {
		return profile, ErrInvalidCredentials
	}

	if password.NeedsRehash(hash) {
		if fresh, err := password.Hash(plain); err == nil {
			_, _ = s.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", fresh, profile.ID)
		}
	}
	if _, err := s.db.ExecContext(ctx, "UPDATE users SET last_login = ? WHERE id = ?", s.now(), profile.ID); err != nil {
		return profile, fmt.Errorf("recording login: %w", err)
	}

	roles, err := s.userRoles(ctx, profile.ID)
	if err != nil {
		return profile, err
	}
	profile.Roles = roles[profile.ID]
	if profile.Roles == nil {
		profile.Roles = []model.RoleRef{}
	}
	return profile, nil
}

// replaceLinks rewrites the rows of a join table owned by ownerID. Unknown
// targets yield ErrNotFound.
func replaceLinks(ctx context.Context, tx *sql.Tx, table, ownerCol, targetCol string, ownerID int64, targetIDs []int64) error {
	ids := slices.Clone(targetIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+ownerCol+" = ?", ownerID); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	if len(ids) == 0 {
		return nil
	}

	targets := "roles"
	if targetCol == "permission_id" {
		targets = "permissions"
	}
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	var found int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+targets+" WHERE id IN ("+placeholders(len(ids))+")", args...).Scan(&found)
	if err != nil {
		return fmt.Errorf("checking %s: %w", targets, err)
	}
	if found != len(ids) {
		return fmt.Errorf("linking %s: %w", targets, ErrNotFound)
	}

	values := make([]string, 0, len(ids))
	linkArgs := make([]any, 0, 2*len(ids))
	for _, id := range ids {
		values = append(values, "(?, ?)")
		linkArgs = append(linkArgs, ownerID, id)
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO "+table+" ("+ownerCol+", "+targetCol+") VALUES "+strings.Join(values, ", "), linkArgs...)
	if err != nil {
		return writeErr("linking "+targets, err)
	}
	return nil
}

const roleSelect = `SELECT id, name, display_name, description FROM roles`

func scanRole(row scanner) (model.Role, error) {
	r := model.Role{Permissions: []model.Permission{}}
	err := row.Scan(&r.ID, &r.Name, &r.DisplayName, &r.Description)
	return r, err
}

const permissionSelect = `SELECT p.id, p.name, p.display_name_en, p.display_name_bn, p.module FROM permissions p`

func scanPermission(row scanner) (model.Permission, error) {
	var p model.Permission
	err := row.Scan(&p.ID, &p.Name, &p.DisplayNameEn, &p.DisplayNameBn, &p.Module)
	return p, err
}

// rolePermissions returns the permissions of every role keyed by role id.
func (s *Store) rolePermissions(ctx context.Context) (map[int64][]model.Permission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rp.role_id, p.id, p.name, p.display_name_en, p.display_name_bn, p.module
		FROM role_permissions rp JOIN permissions p ON p.id = rp.permission_id
		ORDER BY p.module, p.id`)
	if err != nil {
		return nil, fmt.Errorf("listing role permissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64][]model.Permission)
	for rows.Next() {
		var (
			roleID int64
			p      model.Permission
		)
		if err := rows.Scan(&roleID, &p.ID, &p.Name, &p.DisplayNameEn, &p.DisplayNameBn, &p.Module); err != nil {
			return nil, fmt.Errorf("scanning role permissions: %w", err)
		}
		out[roleID] = append(out[roleID], p)
	}
	return out, rows.Err()
}

// ListRoles returns all roles with their permissions.
func (s *Store) ListRoles(ctx context.Context) ([]model.Role, error) {
	rows, err := s.db.QueryContext(ctx, roleSelect+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	roles, err := collect(rows, scanRole)
	if err != nil {
		return nil, fmt.Errorf("scanning roles: %w", err)
	}

	perms, err := s.rolePermissions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		if p, ok := perms[roles[i].ID]; ok {
			roles[i].Permissions = p
		}
	}
	return roles, nil
}

// GetRole returns a role by id with its permissions.
func (s *Store) GetRole(ctx context.Context, id int64) (model.Role, error) {
	r, err := scanRole(s.db.QueryRowContext(ctx, roleSelect+" WHERE id = ?", id))
	if err != nil {
		return r, readErr("getting role", err)
	}
	perms, err := s.rolePermissions(ctx)
	if err != nil {
		return r, err
	}
	if p, ok := perms[id]; ok {
		r.Permissions = p
	}
	return r, nil
}

// CreateRole stores a new role. Permissions are assigned separately.
func (s *Store) CreateRole(ctx context.Context, in model.RoleInput) (model.Role, error) {
	id, err := insertID(ctx, s.db, "creating role",
		`INSERT INTO roles (name, display_name, description) VALUES (`+placeholders(3)+`)`,
		in.Name, in.DisplayName, in.Description)
	if err != nil {
		return model.Role{}, err
	}
	return s.GetRole(ctx, id)
}

// UpdateRole replaces a role's names.
func (s *Store) UpdateRole(ctx context.Context, id int64, in model.RoleInput) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE roles SET name = ?, display_name = ?, description = ? WHERE id = ?`,
		in.Name, in.DisplayName, in.Description, id)
	return affectedOne("updating role", res, err)
}

// DeleteRole removes a role.
func (s *Store) DeleteRole(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM roles WHERE id = ?", id)
	return affectedOne("deleting role", res, err)
}

// SetRolePermissions replaces the permissions of a role.
func (s *Store) SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM roles WHERE id = ?", roleID).Scan(&n); err != nil {
			return fmt.Errorf("checking role: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("assigning permissions: %w", ErrNotFound)
		}
		return replaceLinks(ctx, tx, "role_permissions", "role_id", "permission_id", roleID, permissionIDs)
	})
}

// ListPermissions returns every permission grouped by module.
func (s *Store) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	rows, err := s.db.QueryContext(ctx, permissionSelect+" ORDER BY p.module, p.id")
	if err != nil {
		return nil, fmt.Errorf("listing permissions: %w", err)
	}
	perms, err := collect(rows, scanPermission)
	if err != nil {
		return nil, fmt.Errorf("scanning permissions: %w", err)
	}
	return perms, nil
}

const districtSelect = `SELECT id, name_en, name_bn, code, is_active, created_at FROM districts`

func scanDistrict(row scanner) (model.District, error) {
	var d model.District
	err := row.Scan(&d.ID, &d.NameEn, &d.NameBn, &d.Code, &d.IsActive, &d.CreatedAt)
	return d, err
}

// ListDistricts returns districts by English name, optionally only the
// active ones.
func (s *Store) ListDistricts(ctx context.Context, activeOnly bool) ([]model.District, error) {
	query, args := districtSelect+" ORDER BY name_en, id", []any(nil)
	if activeOnly {
		query = districtSelect + " WHERE is_active = ? ORDER BY name_en, id"
		args = []any{true}
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing districts: %w", err)
	}
	districts, err := collect(rows, scanDistrict)
	if err != nil {
		return nil, fmt.Errorf("scanning districts: %w", err)
	}
	return districts, nil
}

// GetDistrict returns a district by id.
func (s *Store) GetDistrict(ctx context.Context, id int64) (model.District, error) {
	d, err := scanDistrict(s.db.QueryRowContext(ctx, districtSelect+" WHERE id = ?", id))
	if err != nil {
		return d, readErr("getting district", err)
	}
	return d, nil
}

// CreateDistrict stores a new district. A taken code yields ErrConflict.
func (s *Store) CreateDistrict(ctx context.Context, in model.DistrictInput) (model.District, error) {
	id, err := insertID(ctx, s.db, "creating district",
		`INSERT INTO districts (name_en, name_bn, code, is_active, created_at) VALUES (`+placeholders(5)+`)`,
		in.NameEn, in.NameBn, in.Code, in.IsActive, s.now())
	if err != nil {
		return model.District{}, err
	}
	return s.GetDistrict(ctx, id)
}

// UpdateDistrict replaces a district.
func (s *Store) UpdateDistrict(ctx context.Context, id int64, in model.DistrictInput) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE districts SET name_en = ?, name_bn = ?, code = ?, is_active = ? WHERE id = ?`,
		in.NameEn, in.NameBn, in.Code, in.IsActive, id)
	return affectedOne("updating district", res, err)
}

// DeleteDistrict removes a district. Its users keep their accounts.
func (s *Store) DeleteDistrict(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM districts WHERE id = ?", id)
	return affectedOne("deleting district", res, err)
}
