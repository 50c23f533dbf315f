// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/olegiv/protidin-go/internal/model"
)

// Default seed values.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminName     = "Administrator"
	SuperAdminRole       = "super_admin"
)

// SeedOptions controls the first-run data.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string // generated and logged when empty
}

type seedPermission struct {
	name, en, bn, module string
}

// defaultPermissions are the capabilities of the admin console, by module.
var defaultPermissions = []seedPermission{
	{"news.view", "View news", "সংবাদ দেখুন", "news"},
	{"news.create", "Create news", "সংবাদ তৈরি করুন", "news"},
	{"news.edit", "Edit news", "সংবাদ সম্পাদনা করুন", "news"},
	{"news.delete", "Delete news", "সংবাদ মুছুন", "news"},
	{"categories.manage", "Manage categories", "বিভাগ পরিচালনা করুন", "categories"},
	{"media.manage", "Manage photos and videos", "ছবি ও ভিডিও পরিচালনা করুন", "media"},
	{"ads.manage", "Manage ads", "বিজ্ঞাপন পরিচালনা করুন", "ads"},
	{"menus.manage", "Manage menus", "মেনু পরিচালনা করুন", "menus"},
	{"users.manage", "Manage users", "ব্যবহারকারী পরিচালনা করুন", "users"},
	{"roles.manage", "Manage roles", "ভূমিকা পরিচালনা করুন", "users"},
	{"districts.manage", "Manage districts", "জেলা পরিচালনা করুন", "districts"},
	{"settings.manage", "Manage settings", "সেটিংস পরিচালনা করুন", "settings"},
}

// Seed creates the first-run data: permissions, a super admin role holding
// all of them, the admin account, the default district and the default
// settings. Each part is skipped when its table already has rows.
func Seed(ctx context.Context, st *Store, opts SeedOptions, logger *slog.Logger) error {
	permIDs, err := seedPermissions(ctx, st, logger)
	if err != nil {
		return err
	}
	districtID, err := seedDistrict(ctx, st, logger)
	if err != nil {
		return err
	}
	if err := seedAdmin(ctx, st, opts, permIDs, districtID, logger); err != nil {
		return err
	}
	return seedSettings(ctx, st, logger)
}

func isEmpty(ctx context.Context, st *Store, table string) (bool, error) {
	var n int
	if err := st.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return false, fmt.Errorf("counting %s: %w", table, err)
	}
	return n == 0, nil
}

func seedPermissions(ctx context.Context, st *Store, logger *slog.Logger) ([]int64, error) {
	empty, err := isEmpty(ctx, st, "permissions")
	if err != nil || !empty {
		return nil, err
	}
	ids := make([]int64, 0, len(defaultPermissions))
	for _, p := range defaultPermissions {
		id, err := insertID(ctx, st.db, "seeding permission",
			`INSERT INTO permissions (name, display_name_en, display_name_bn, module) VALUES (`+placeholders(4)+`)`,
			p.name, p.en, p.bn, p.module)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	logger.Info("seeded permissions", "count", len(ids))
	return ids, nil
}

func seedDistrict(ctx context.Context, st *Store, logger *slog.Logger) (*int64, error) {
	empty, err := isEmpty(ctx, st, "districts")
	if err != nil || !empty {
		return nil, err
	}
	d, err := st.CreateDistrict(ctx, model.DistrictInput{
		NameEn:   "Satkhira",
		NameBn:   "সাতক্ষীরা",
		Code:     "SAT",
		IsActive: true,
	})
	if err != nil {
		return nil, fmt.Errorf("seeding district: %w", err)
	}
	logger.Info("seeded default district", "code", d.Code)
	return &d.ID, nil
}

func seedAdmin(ctx context.Context, st *Store, opts SeedOptions, permIDs []int64, districtID *int64, logger *slog.Logger) error {
	empty, err := isEmpty(ctx, st, "users")
	if err != nil || !empty {
		return err
	}

	role, err := st.CreateRole(ctx, model.RoleInput{
		Name:        SuperAdminRole,
		DisplayName: "Super Admin",
		Description: "Full access to the admin console",
	})
	if err != nil {
		return fmt.Errorf("seeding role: %w", err)
	}
	if len(permIDs) == 0 {
		perms, err := st.ListPermissions(ctx)
		if err != nil {
			return err
		}
		for _, p := range perms {
			permIDs = append(permIDs, p.ID)
		}
	}
	if len(permIDs) > 0 {
		if err := st.SetRolePermissions(ctx, role.ID, permIDs); err != nil {
			return fmt.Errorf("seeding role permissions: %w", err)
		}
	}

	username := opts.AdminUsername
	if username == "" {
		username = DefaultAdminUsername
	}
	generated := opts.AdminPassword == ""
	pass := opts.AdminPassword
	if generated {
		pass = uuid.NewString()
	}

	user, err := st.CreateUser(ctx, model.UserInput{
		Username:   username,
		Email:      DefaultAdminEmail,
		Password:   pass,
		FullName:   DefaultAdminName,
		DistrictID: districtID,
		RoleIDs:    []int64{role.ID},
		IsActive:   true,
	})
	if err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	if generated {
		logger.Warn("created default admin user with a generated password, change it after first login",
			"id", user.ID, "username", user.Username, "password", pass)
	} else {
		logger.Info("created default admin user", "id", user.ID, "username", user.Username)
	}
	return nil
}

func seedSettings(ctx context.Context, st *Store, logger *slog.Logger) error {
	empty, err := isEmpty(ctx, st, "settings")
	if err != nil || !empty {
		return err
	}
	err = st.UpdateSettings(ctx, model.SettingsInput{
		SiteNameEn:    model.DefaultSiteNameEn,
		SiteNameBn:    model.DefaultSiteNameBn,
		DescriptionEn: "Regional news from Satkhira and Khulna",
		DescriptionBn: "সাতক্ষীরা ও খুলনার আঞ্চলিক সংবাদ",
		ThemeColor:    "#dc2626",
	})
	if err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}
	logger.Info("seeded default settings")
	return nil
}
