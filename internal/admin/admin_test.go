// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package admin

import (
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/model"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func mustResource(t *testing.T, name string) *Resource {
	t.Helper()
	s, err := Load()
	require.NoError(t, err)
	r, ok := s.Resource(name)
	require.True(t, ok, "resource %s", name)
	return r
}

func TestLoad_AllResources(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	for _, name := range []string{"news", "categories", "photos", "videos", "ads", "menus", "users", "roles", "districts", "settings"} {
		r, ok := s.Resource(name)
		if !assert.True(t, ok, name) {
			continue
		}
		assert.NotEmpty(t, r.Fields, name)
		if !r.Singleton {
			assert.NotEmpty(t, r.Columns, name)
		}
	}

	positions, ok := s.StaticOptions("positions")
	require.True(t, ok)
	assert.Len(t, positions, 5)
}

func TestLoad_LabelsTranslated(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	check := func(key string) {
		if key == "" {
			return
		}
		for _, lang := range i18n.SupportedLanguages {
			assert.NotEqual(t, key, i18n.T(lang, key), "missing %s translation for %s", lang, key)
		}
	}
	for _, r := range s.Resources {
		check(r.Title)
		check(r.Heading)
		for _, f := range r.Fields {
			check(f.Label)
			check(f.Hint)
			check(f.Section)
			check(f.Blank)
		}
		for _, c := range r.Columns {
			check(c.Label)
			check(c.Empty)
			for _, fl := range c.Flags {
				check(fl.Label)
			}
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"duplicate":     "resources:\n  - name: a\n  - name: a\n",
		"unnamed":       "resources:\n  - title: x\n",
		"field kind":    "resources:\n  - name: a\n    fields:\n      - {name: x, kind: slider}\n",
		"column kind":   "resources:\n  - name: a\n    columns:\n      - {key: x, kind: sparkline}\n",
		"select source": "resources:\n  - name: a\n    fields:\n      - {name: x, kind: select}\n",
		"syntax":        "resources: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestSections(t *testing.T) {
	r := mustResource(t, "settings")

	var titles []string
	for _, s := range r.Sections() {
		titles = append(titles, s.Title)
	}
	want := []string{"settings.basic", "settings.appearance", "settings.contact", "settings.social", "settings.footer"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitted_News(t *testing.T) {
	r := mustResource(t, "news")

	form, doc := r.Submitted(url.Values{
		"title_en":    {"  Flood warning "},
		"title_bn":    {"বন্যা সতর্কতা"},
		"content_en":  {"<p>Rain</p>"},
		"content_bn":  {"<p>বৃষ্টি</p>"},
		"category":    {"4"},
		"is_breaking": {"on"},
	}, true)
	require.True(t, form.Valid(), form.Errors)

	in, ok := Bind[model.ArticleInput](form, doc)
	require.True(t, ok, form.Errors)
	assert.Equal(t, "Flood warning", in.TitleEn)
	assert.Equal(t, int64(4), in.Category)
	assert.True(t, in.IsBreaking)
	assert.False(t, in.IsFeatured)
	assert.Equal(t, "true", form.Get("is_breaking"))
}

func TestSubmitted_Errors(t *testing.T) {
	r := mustResource(t, "news")

	form, doc := r.Submitted(url.Values{
		"title_en":   {"A"},
		"content_en": {"x"},
		"content_bn": {"y"},
		"category":   {"abc"},
		"image":      {"not a url"},
	}, true)
	assert.Equal(t, ErrRequired, form.Error("title_bn"))
	assert.Equal(t, ErrInvalid, form.Error("category"))
	assert.Equal(t, "A", form.Get("title_en"), "submitted values are echoed")

	_, ok := Bind[model.ArticleInput](form, doc)
	assert.False(t, ok)
	assert.Equal(t, ErrInvalid, form.Error("image"))
	assert.Equal(t, ErrRequired, form.Error("title_bn"), "schema errors are kept")
}

func TestSubmitted_UserPassword(t *testing.T) {
	r := mustResource(t, "users")
	values := url.Values{
		"username":   {"editor"},
		"email":      {"editor@example.com"},
		"full_name":  {"News Editor"},
		"districtId": {""},
		"roleIds":    {"2", "3"},
		"is_active":  {"on"},
	}

	form, _ := r.Submitted(values, true)
	assert.Equal(t, ErrRequired, form.Error("password"), "password is required on create")

	form, doc := r.Submitted(values, false)
	require.True(t, form.Valid(), form.Errors)
	in, ok := Bind[model.UserInput](form, doc)
	require.True(t, ok, form.Errors)
	assert.Empty(t, in.Password)
	assert.Nil(t, in.DistrictID)
	assert.Equal(t, []int64{2, 3}, in.RoleIDs)
	assert.True(t, form.Checked("roleIds", "3"))

	values.Set("password", "secret1")
	values.Set("districtId", "7")
	form, doc = r.Submitted(values, false)
	in, ok = Bind[model.UserInput](form, doc)
	require.True(t, ok, form.Errors)
	assert.Equal(t, "secret1", in.Password)
	require.NotNil(t, in.DistrictID)
	assert.Equal(t, int64(7), *in.DistrictID)
	assert.Empty(t, form.Get("password"), "passwords are not echoed")
}

func TestSubmitted_SettingsJSON(t *testing.T) {
	r := mustResource(t, "settings")

	form, _ := r.Submitted(url.Values{
		"site_name_en": {"Daily"},
		"site_name_bn": {"দৈনিক"},
		"footer_links": {"{broken"},
	}, false)
	assert.Equal(t, ErrInvalid, form.Error("footer_links"))
}

func TestPrefill(t *testing.T) {
	r := mustResource(t, "roles")
	role := model.Role{
		ID:          3,
		Name:        "editor",
		DisplayName: "Editor",
		Permissions: []model.Permission{{ID: 1}, {ID: 5}},
	}

	form, err := r.Prefill(role.Input())
	require.NoError(t, err)
	assert.Equal(t, "editor", form.Get("name"))
	assert.True(t, form.Checked("permissionIds", "1"))
	assert.True(t, form.Checked("permissionIds", "5"))
	assert.False(t, form.Checked("permissionIds", "2"))

	district := int64(9)
	user := model.User{ID: 1, Username: "u", District: &model.DistrictRef{ID: district}, Roles: []model.RoleRef{{ID: 2}}}
	form, err = mustResource(t, "users").Prefill(user.Input())
	require.NoError(t, err)
	assert.Equal(t, "9", form.Get("districtId"))
	assert.Empty(t, form.Get("password"))
	assert.Empty(t, form.Get("is_active"), "false checkboxes stay unchecked")
}

func TestNewForm_Defaults(t *testing.T) {
	form := mustResource(t, "ads").NewForm()
	assert.Equal(t, "header", form.Get("position"))
	assert.Equal(t, "true", form.Get("is_active"))
	assert.True(t, form.Valid())
}

func TestRows(t *testing.T) {
	login := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	users := []model.User{
		{
			ID:        1,
			Username:  "admin",
			District:  &model.DistrictRef{ID: 1, NameEn: "Satkhira", NameBn: "সাতক্ষীরা"},
			Roles:     []model.RoleRef{{ID: 1, DisplayName: "Admin"}, {ID: 2, DisplayName: "Editor"}},
			IsActive:  true,
			LastLogin: &login,
		},
		{ID: 2, Username: "guest"},
	}
	r := mustResource(t, "users")

	rows, err := Rows(r, users, model.LangEnglish)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	cells := map[string]Cell{}
	for i, c := range r.Columns {
		cells[c.Key] = rows[0].Cells[i]
	}
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, "Satkhira", cells["district.name"].Text)
	assert.Equal(t, "Admin, Editor", cells["roles"].Text)
	assert.Equal(t, "Mar 15, 2026 2:30 PM", cells["last_login"].Text)
	assert.Equal(t, "Active", cells["is_active"].Badges[0].Label)

	for i, c := range r.Columns {
		cells[c.Key] = rows[1].Cells[i]
	}
	assert.Equal(t, "All", cells["district.name"].Text)
	assert.True(t, cells["district.name"].Muted)
	assert.Equal(t, "Never", cells["last_login"].Text)
	assert.Equal(t, "Inactive", cells["is_active"].Badges[0].Label)
}

func TestRows_NewsFlagsAndCategory(t *testing.T) {
	news := []model.Article{{
		ID:         4,
		TitleEn:    "Flood",
		TitleBn:    "বন্যা",
		Category:   &model.CategoryRef{ID: 1, NameEn: "Local", NameBn: "স্থানীয়"},
		IsBreaking: true,
		IsTrending: true,
	}}
	r := mustResource(t, "news")

	rows, err := Rows(r, news, model.LangBengali)
	require.NoError(t, err)

	texts := map[string]Cell{}
	for i, c := range r.Columns {
		texts[string(c.Kind)+":"+c.Key] = rows[0].Cells[i]
	}
	assert.Equal(t, "বন্যা", texts["localized:title"].Text)
	assert.Equal(t, "স্থানীয়", texts["localized:category.name"].Text)
	assert.Len(t, texts["flags:"].Badges, 2)
}

func TestGroupOptions(t *testing.T) {
	groups := GroupOptions([]Option{
		{Value: "1", Group: "news"},
		{Value: "2"},
		{Value: "3", Group: "news"},
		{Value: "4", Group: "users"},
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "news", groups[0].Name)
	assert.Len(t, groups[0].Options, 2)
	assert.Equal(t, DefaultGroup, groups[1].Name)
	assert.Equal(t, "users", groups[2].Name)
}
