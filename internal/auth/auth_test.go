// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/protidin-go/internal/model"
)

func sessionContext(t *testing.T) (*scs.SessionManager, context.Context) {
	t.Helper()
	sm := scs.New()
	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)
	return sm, ctx
}

func TestStore_LoginLoadLogout(t *testing.T) {
	sm, ctx := sessionContext(t)
	store := NewStore(sm)

	assert.False(t, store.Load(ctx).Authenticated)

	admin := model.AdminProfile{ID: 1, Username: "admin", FullName: "Site Admin"}
	require.NoError(t, store.Login(ctx, admin))

	st := store.Load(ctx)
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.Admin)
	assert.Equal(t, "admin", st.Admin.Username)
	assert.Equal(t, "Site Admin", st.DisplayName())

	sm.Put(ctx, "admin_lang", "en")
	require.NoError(t, store.Logout(ctx))

	assert.False(t, store.Load(ctx).Authenticated)
	assert.Equal(t, "en", sm.GetString(ctx, "admin_lang"), "logout keeps unrelated session values")
}

func TestStore_CorruptProfile(t *testing.T) {
	sm, ctx := sessionContext(t)
	sm.Put(ctx, SessionKeyAuthenticated, true)
	sm.Put(ctx, SessionKeyAdmin, []byte("{not json"))

	assert.False(t, NewStore(sm).Load(ctx).Authenticated)
}

func TestContext(t *testing.T) {
	assert.False(t, FromContext(context.Background()).Authenticated)

	ctx := WithState(context.Background(), State{Authenticated: true, Admin: &model.AdminProfile{Username: "ed"}})
	st := FromContext(ctx)
	assert.True(t, st.Authenticated)
	assert.Equal(t, "ed", st.DisplayName())
}
