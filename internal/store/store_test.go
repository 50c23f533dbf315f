// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"

	"github.com/olegiv/protidin-go/internal/model"
)

// testStore returns a Store on a migrated in-memory database.
func testStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db, DriverSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return New(db)
}

func newCategory(t *testing.T, s *Store, slug string) model.Category {
	t.Helper()
	c, err := s.CreateCategory(context.Background(), model.CategoryInput{
		NameEn: "Name " + slug, NameBn: "নাম " + slug, Slug: slug, ShowInMenu: true,
	})
	if err != nil {
		t.Fatalf("CreateCategory(%q): %v", slug, err)
	}
	return c
}

func TestCategories_SlugLookup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	sports := newCategory(t, s, "sports")
	newCategory(t, s, "politics")

	got, err := s.GetCategoryBySlug(ctx, "sports")
	if err != nil {
		t.Fatalf("GetCategoryBySlug: %v", err)
	}
	if got.ID != sports.ID || got.NameBn != "নাম sports" {
		t.Errorf("GetCategoryBySlug = %+v, want id %d", got, sports.ID)
	}
	if !got.InMenu() {
		t.Error("category should be in menu")
	}

	if _, err := s.GetCategoryBySlug(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCategoryBySlug(missing) error = %v, want ErrNotFound", err)
	}

	_, err = s.CreateCategory(ctx, model.CategoryInput{NameEn: "Again", NameBn: "আবার", Slug: "sports"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate slug error = %v, want ErrConflict", err)
	}
}

func TestCategories_OrderAndDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i, slug := range []string{"c", "a", "b"} {
		if _, err := s.CreateCategory(ctx, model.CategoryInput{NameEn: slug, NameBn: slug, Slug: slug, Order: 3 - i}); err != nil {
			t.Fatalf("CreateCategory: %v", err)
		}
	}
	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	var slugs []string
	for _, c := range cats {
		slugs = append(slugs, c.Slug)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, slugs); diff != "" {
		t.Errorf("category order mismatch (-want +got):\n%s", diff)
	}

	if err := s.DeleteCategory(ctx, cats[0].ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := s.DeleteCategory(ctx, cats[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteCategory error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateCategory(ctx, 999, model.CategoryInput{Slug: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateCategory(999) error = %v, want ErrNotFound", err)
	}
}

func articleInput(title string, category int64) model.ArticleInput {
	return model.ArticleInput{
		TitleEn:   title,
		TitleBn:   "শিরোনাম",
		ContentEn: "<p>Body</p>",
		ContentBn: "<p>বিষয়বস্তু</p>",
		Category:  category,
	}
}

func TestNews_SlugsAndLookup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	cat := newCategory(t, s, "local")

	first, err := s.CreateNews(ctx, articleInput("River Festival Begins", cat.ID))
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	second, err := s.CreateNews(ctx, articleInput("River Festival Begins", cat.ID))
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	if first.Slug != "river-festival-begins" {
		t.Errorf("first slug = %q", first.Slug)
	}
	if second.Slug != "river-festival-begins-2" {
		t.Errorf("second slug = %q", second.Slug)
	}
	if first.Category == nil || first.Category.Slug != "local" {
		t.Errorf("category = %+v, want local", first.Category)
	}

	bySlug, err := s.GetNews(ctx, "river-festival-begins-2")
	if err != nil {
		t.Fatalf("GetNews(slug): %v", err)
	}
	if bySlug.ID != second.ID {
		t.Errorf("GetNews(slug) id = %d, want %d", bySlug.ID, second.ID)
	}

	in := articleInput("Completely New Title", 0)
	if err := s.UpdateNews(ctx, first.ID, in); err != nil {
		t.Fatalf("UpdateNews: %v", err)
	}
	updated, err := s.GetNews(ctx, model.IDString(first))
	if err != nil {
		t.Fatalf("GetNews(id): %v", err)
	}
	if updated.Slug != first.Slug {
		t.Errorf("slug changed on update: %q", updated.Slug)
	}
	if updated.Category != nil {
		t.Errorf("category = %+v, want none", updated.Category)
	}

	if _, err := s.GetNews(ctx, "no-such-article"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetNews(missing) error = %v, want ErrNotFound", err)
	}
}

func TestNews_BengaliTitleSlug(t *testing.T) {
	s := testStore(t)
	in := articleInput("", 0)
	in.TitleBn = "নদী উৎসব"

	a, err := s.CreateNews(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	if a.Slug == "" || a.Slug == "news" {
		t.Errorf("slug = %q, want transliterated title", a.Slug)
	}
}

func TestNews_Filters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	sports := newCategory(t, s, "sports")

	breaking := articleInput("Breaking", 0)
	breaking.IsBreaking = true
	trending := articleInput("Trending", sports.ID)
	trending.IsTrending = true
	plain := articleInput("Plain", sports.ID)

	var ids []int64
	for _, in := range []model.ArticleInput{breaking, trending, plain} {
		a, err := s.CreateNews(ctx, in)
		if err != nil {
			t.Fatalf("CreateNews: %v", err)
		}
		ids = append(ids, a.ID)
	}

	tests := []struct {
		name   string
		filter NewsFilter
		want   []int64
	}{
		{"all newest first", NewsFilter{}, []int64{ids[2], ids[1], ids[0]}},
		{"breaking", NewsFilter{Breaking: true}, []int64{ids[0]}},
		{"trending", NewsFilter{Trending: true}, []int64{ids[1]}},
		{"featured none", NewsFilter{Featured: true}, []int64{}},
		{"category", NewsFilter{CategoryID: sports.ID}, []int64{ids[2], ids[1]}},
		{"limit", NewsFilter{Limit: 1}, []int64{ids[2]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			news, err := s.ListNews(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListNews: %v", err)
			}
			got := []int64{}
			for _, a := range news {
				got = append(got, a.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNews_IncrementViews(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a, err := s.CreateNews(ctx, articleInput("Counted", 0))
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	for range 3 {
		if err := s.IncrementViews(ctx, a.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}
	got, err := s.GetNews(ctx, model.IDString(a))
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if got.Views != 3 {
		t.Errorf("Views = %d, want 3", got.Views)
	}
	if err := s.IncrementViews(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("IncrementViews(999) error = %v, want ErrNotFound", err)
	}
}

func TestAds_ActiveOnlyByPosition(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	inputs := []model.AdInput{
		{Title: "second", ImageURL: "https://ads.example/2.png", Position: model.AdSidebar, Order: 2, IsActive: true},
		{Title: "hidden", ImageURL: "https://ads.example/h.png", Position: model.AdSidebar, Order: 0, IsActive: false},
		{Title: "first", ImageURL: "https://ads.example/1.png", Position: model.AdSidebar, Order: 1, IsActive: true},
		{Title: "footer", ImageURL: "https://ads.example/f.png", Position: model.AdFooter, IsActive: true},
	}
	for _, in := range inputs {
		if _, err := s.CreateAd(ctx, in); err != nil {
			t.Fatalf("CreateAd: %v", err)
		}
	}

	titles := func(ads []model.Ad) []string {
		out := []string{}
		for _, a := range ads {
			out = append(out, a.Title)
		}
		return out
	}

	sidebar, err := s.ListAds(ctx, model.AdSidebar)
	if err != nil {
		t.Fatalf("ListAds: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, titles(sidebar)); diff != "" {
		t.Errorf("sidebar ads mismatch (-want +got):\n%s", diff)
	}

	all, err := s.ListAds(ctx, "")
	if err != nil {
		t.Fatalf("ListAds: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListAds(all) = %d ads, want 4", len(all))
	}

	none, err := s.ListAds(ctx, model.AdHeader)
	if err != nil {
		t.Fatalf("ListAds: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("ListAds(header) = %v, want empty slice", none)
	}
}

func TestMenus_LocationIncludesBoth(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	parent, err := s.CreateMenuItem(ctx, model.MenuItemInput{TitleEn: "Home", TitleBn: "প্রচ্ছদ", URL: "/", Location: model.MenuBoth, IsActive: true})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	child, err := s.CreateMenuItem(ctx, model.MenuItemInput{
		TitleEn: "Sports", TitleBn: "খেলা", URL: "/category/sports", Location: model.MenuHeader, Order: 1, ParentID: &parent.ID,
	})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	if _, err := s.CreateMenuItem(ctx, model.MenuItemInput{TitleEn: "About", TitleBn: "আমাদের", URL: "/about", Location: model.MenuFooter}); err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}

	header, err := s.ListMenus(ctx, model.MenuHeader)
	if err != nil {
		t.Fatalf("ListMenus: %v", err)
	}
	if len(header) != 2 || header[0].ID != parent.ID || header[1].ID != child.ID {
		t.Fatalf("header menus = %+v", header)
	}
	if header[1].ParentID == nil || *header[1].ParentID != parent.ID {
		t.Errorf("child ParentID = %v, want %d", header[1].ParentID, parent.ID)
	}
	if header[0].ParentID != nil {
		t.Errorf("parent ParentID = %v, want nil", *header[0].ParentID)
	}

	footer, err := s.ListMenus(ctx, model.MenuFooter)
	if err != nil {
		t.Fatalf("ListMenus: %v", err)
	}
	if len(footer) != 2 {
		t.Errorf("footer menus = %d, want 2", len(footer))
	}
}

func TestMedia_CRUD(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, err := s.CreatePhoto(ctx, model.PhotoInput{TitleEn: "Boat", TitleBn: "নৌকা", ImageURL: "https://img.example/boat.jpg"})
	if err != nil {
		t.Fatalf("CreatePhoto: %v", err)
	}
	if p.CreatedAt.IsZero() {
		t.Error("photo CreatedAt is zero")
	}
	in := p.Input()
	in.DescriptionEn = "On the river"
	if err := s.UpdatePhoto(ctx, p.ID, in); err != nil {
		t.Fatalf("UpdatePhoto: %v", err)
	}
	got, err := s.GetPhoto(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPhoto: %v", err)
	}
	if got.DescriptionEn != "On the river" {
		t.Errorf("DescriptionEn = %q", got.DescriptionEn)
	}
	if err := s.DeletePhoto(ctx, p.ID); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}

	v, err := s.CreateVideo(ctx, model.VideoInput{TitleEn: "Match", TitleBn: "ম্যাচ", VideoURL: "https://video.example/m"})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	videos, err := s.ListVideos(ctx)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != v.ID {
		t.Errorf("ListVideos = %+v", videos)
	}
	photos, err := s.ListPhotos(ctx)
	if err != nil {
		t.Fatalf("ListPhotos: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("ListPhotos after delete = %d", len(photos))
	}
}

func TestUsers_RolesAndAuthenticate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	district, err := s.CreateDistrict(ctx, model.DistrictInput{NameEn: "Khulna", NameBn: "খুলনা", Code: "KHU", IsActive: true})
	if err != nil {
		t.Fatalf("CreateDistrict: %v", err)
	}
	editor, err := s.CreateRole(ctx, model.RoleInput{Name: "editor", DisplayName: "Editor"})
	if err != nil {
		t.Fatalf("CreateRole: %v", err)
	}

	u, err := s.CreateUser(ctx, model.UserInput{
		Username: "rahim", Email: "rahim@example.com", Password: "secret1", FullName: "Rahim",
		DistrictID: &district.ID, RoleIDs: []int64{editor.ID, editor.ID}, IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.District == nil || u.District.Code != "KHU" {
		t.Errorf("District = %+v", u.District)
	}
	if diff := cmp.Diff([]model.RoleRef{{ID: editor.ID, Name: "editor", DisplayName: "Editor"}}, u.Roles); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
	if u.LastLogin != nil {
		t.Errorf("LastLogin = %v, want nil", u.LastLogin)
	}

	profile, err := s.Authenticate(ctx, "rahim@example.com", "secret1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if profile.ID != u.ID || len(profile.Roles) != 1 {
		t.Errorf("profile = %+v", profile)
	}
	if _, err := s.Authenticate(ctx, "rahim", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", err)
	}
	if _, err := s.Authenticate(ctx, "nobody", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v", err)
	}

	after, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if after.LastLogin == nil {
		t.Error("LastLogin not recorded")
	}

	in := after.Input()
	in.IsActive = false
	in.RoleIDs = nil
	if err := s.UpdateUser(ctx, u.ID, in); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if _, err := s.Authenticate(ctx, "rahim", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("inactive user error = %v, want ErrInvalidCredentials", err)
	}
	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || len(users[0].Roles) != 0 {
		t.Errorf("ListUsers = %+v", users)
	}

	in.RoleIDs = []int64{999}
	if err := s.UpdateUser(ctx, u.ID, in); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown role error = %v, want ErrNotFound", err)
	}
}

func TestUsers_CreateRequiresPassword(t *testing.T) {
	s := testStore(t)
	_, err := s.CreateUser(context.Background(), model.UserInput{Username: "x", Email: "x@example.com"})
	if !errors.Is(err, ErrPasswordRequired) {
		t.Errorf("error = %v, want ErrPasswordRequired", err)
	}
}

func TestRoles_SetPermissions(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if err := Seed(ctx, s, SeedOptions{AdminPassword: "changeme"}, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	perms, err := s.ListPermissions(ctx)
	if err != nil {
		t.Fatalf("ListPermissions: %v", err)
	}
	role, err := s.CreateRole(ctx, model.RoleInput{Name: "reporter", DisplayName: "Reporter", PermissionIDs: []int64{perms[0].ID}})
	if err != nil {
		t.Fatalf("CreateRole: %v", err)
	}
	if len(role.Permissions) != 0 {
		t.Errorf("create assigned %d permissions, want 0", len(role.Permissions))
	}

	if err := s.SetRolePermissions(ctx, role.ID, []int64{perms[0].ID, perms[1].ID}); err != nil {
		t.Fatalf("SetRolePermissions: %v", err)
	}
	got, err := s.GetRole(ctx, role.ID)
	if err != nil {
		t.Fatalf("GetRole: %v", err)
	}
	if len(got.Permissions) != 2 {
		t.Errorf("permissions = %d, want 2", len(got.Permissions))
	}

	if err := s.SetRolePermissions(ctx, 999, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown role error = %v, want ErrNotFound", err)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for range 2 {
		if err := Seed(ctx, s, SeedOptions{AdminUsername: "boss", AdminPassword: "changeme"}, logger); err != nil {
			t.Fatalf("Seed: %v", err)
		}
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].Username != "boss" {
		t.Fatalf("users = %+v", users)
	}
	if len(users[0].Roles) != 1 || users[0].Roles[0].Name != SuperAdminRole {
		t.Errorf("admin roles = %+v", users[0].Roles)
	}

	roles, err := s.ListRoles(ctx)
	if err != nil {
		t.Fatalf("ListRoles: %v", err)
	}
	if len(roles) != 1 || len(roles[0].Permissions) != len(defaultPermissions) {
		t.Errorf("roles = %+v", roles)
	}

	active, err := s.ListDistricts(ctx, true)
	if err != nil {
		t.Fatalf("ListDistricts: %v", err)
	}
	if len(active) != 1 || active[0].NameEn != "Satkhira" {
		t.Errorf("districts = %+v", active)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.SiteNameEn != model.DefaultSiteNameEn {
		t.Errorf("SiteNameEn = %q", settings.SiteNameEn)
	}

	if _, err := s.Authenticate(ctx, "boss", "changeme"); err != nil {
		t.Errorf("Authenticate seeded admin: %v", err)
	}
}

func TestSettings_UpsertAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.GetSettings(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSettings before update error = %v, want ErrNotFound", err)
	}

	in := model.SettingsInput{SiteNameEn: "Satkhira Daily", SiteNameBn: "সাতক্ষীরা দৈনিক", ThemeColor: "#123456"}
	for range 2 {
		if err := s.UpdateSettings(ctx, in); err != nil {
			t.Fatalf("UpdateSettings: %v", err)
		}
	}
	got, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if diff := cmp.Diff(in, got.Input()); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestDistricts_ActiveFilter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.CreateDistrict(ctx, model.DistrictInput{NameEn: "Jessore", NameBn: "যশোর", Code: "JES", IsActive: false}); err != nil {
		t.Fatalf("CreateDistrict: %v", err)
	}
	d, err := s.CreateDistrict(ctx, model.DistrictInput{NameEn: "Bagerhat", NameBn: "বাগেরহাট", Code: "BAG", IsActive: true})
	if err != nil {
		t.Fatalf("CreateDistrict: %v", err)
	}
	if _, err := s.CreateDistrict(ctx, model.DistrictInput{NameEn: "Dup", NameBn: "ডুপ", Code: "BAG"}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate code error = %v, want ErrConflict", err)
	}

	all, err := s.ListDistricts(ctx, false)
	if err != nil {
		t.Fatalf("ListDistricts: %v", err)
	}
	active, err := s.ListDistricts(ctx, true)
	if err != nil {
		t.Fatalf("ListDistricts: %v", err)
	}
	if len(all) != 2 || len(active) != 1 || active[0].ID != d.ID {
		t.Errorf("all = %d, active = %+v", len(all), active)
	}
}
