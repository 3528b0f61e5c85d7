package postgres_test

import (
	"context"
	"pen/pkg/domain"
	"pen/pkg/storage"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_Users(t *testing.T) {
	pg := newTestStorage(t)

	ctx := context.Background()

	stored, err := pg.StoreUser(ctx, domain.User{Email: "awa@pen.cm", PasswordHash: []byte("hash")})
	require.NoError(t, err)
	require.NotEqual(t, domain.UserID{}, stored.ID)

	_, err = pg.StoreUser(ctx, domain.User{Email: "awa@pen.cm", PasswordHash: []byte("other")})
	require.ErrorIs(t, err, storage.ErrDuplicate)

	found, err := pg.UserByEmail(ctx, "awa@pen.cm")
	require.NoError(t, err)
	require.Equal(t, stored, found)

	// emails are matched exactly
	missing, err := pg.UserByEmail(ctx, "AWA@pen.cm")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_Profiles(t *testing.T) {
	pg := newTestStorage(t)

	ctx := context.Background()

	user, err := pg.StoreUser(ctx, domain.User{Email: "bob@pen.cm", PasswordHash: []byte("hash")})
	require.NoError(t, err)

	sub, err := pg.Subscription(ctx, user.ID)
	require.NoError(t, err)
	require.Nil(t, sub)

	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		locked, err := s.LockSubscription(ctx, user.ID)
		require.NoError(t, err)
		require.False(t, locked.IsSubscribed)

		return nil
	})
	require.NoError(t, err)

	sub, err = pg.Subscription(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.False(t, sub.IsSubscribed)

	sub, err = pg.SetSubscribed(ctx, user.ID, true)
	require.NoError(t, err)
	require.True(t, sub.IsSubscribed)
	require.Equal(t, user.ID, sub.OwnerID)

	sub, err = pg.Subscription(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, sub.IsSubscribed)
}

func TestPgSQL_Content(t *testing.T) {
	pg := newTestStorage(t)

	ctx := context.Background()

	// seeded by the second migration
	guides, err := pg.ListContent(ctx, storage.ContentFilter{Kind: domain.ContentKindGuide})
	require.NoError(t, err)
	require.Len(t, guides, 3)
	for i := 1; i < len(guides); i++ {
		require.False(t, guides[i].CreatedAt.After(guides[i-1].CreatedAt))
	}

	created, err := pg.StoreContent(ctx, domain.ContentItem{
		Kind:        domain.ContentKindTool,
		Title:       "Scanner de ports",
		Description: "Audit réseau 100% local",
		ResourceURL: "https://pen.cm/outils/ports.zip",
		IsPremium:   true,
	})
	require.NoError(t, err)
	require.NotEqual(t, domain.ContentID{}, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	tools, err := pg.ListContent(ctx, storage.ContentFilter{Kind: domain.ContentKindTool, Query: "100%"})
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, created.ID, tools[0].ID)

	tools, err = pg.ListContent(ctx, storage.ContentFilter{Kind: domain.ContentKindTool, Query: "BITWARDEN"})
	require.NoError(t, err)
	require.Len(t, tools, 1)

	got, err := pg.ContentByID(ctx, domain.ContentKindTool, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, got.Title)

	// kinds are separate catalogs
	got, err = pg.ContentByID(ctx, domain.ContentKindGuide, created.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	deleted, err := pg.DeleteContent(ctx, domain.ContentKindTool, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, deleted.ID)

	deleted, err = pg.DeleteContent(ctx, domain.ContentKindTool, domain.ContentID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, deleted)
}

func TestPgSQL_ThreatReports(t *testing.T) {
	pg := newTestStorage(t)

	reports, err := pg.ThreatReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 5)
	require.Equal(t, "Douala", reports[0].City)
	require.Equal(t, 23, reports[0].Count)
	for i := 1; i < len(reports); i++ {
		require.LessOrEqual(t, reports[i].Count, reports[i-1].Count)
	}
}
