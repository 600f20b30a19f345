package content

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/memberhub/memberhub/internal/app/service/membership"
	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/repotest"
	"github.com/memberhub/memberhub/pkg/apperr"
	"github.com/memberhub/memberhub/pkg/types"
)

type fixture struct {
	svc    *Service
	member *membership.Service
	store  *repotest.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repotest.NewStore()
	log := zap.NewNop().Sugar()
	member := membership.NewService(store.Levels(), store.Memberships(), store.Users(), log)
	svc := NewService(store.Content(), store.Levels(), member, log)
	return &fixture{svc: svc, member: member, store: store}
}

func (f *fixture) seedUser(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, IsActive: true}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) seedLevel(t *testing.T, name string) *models.MembershipLevel {
	t.Helper()
	l, err := f.member.CreateLevel(context.Background(), &membership.CreateLevelRequest{
		Name: name, Price: decimal.NewFromInt(10), DurationDays: 30, IsActive: true,
	})
	require.NoError(t, err)
	return l
}

func (f *fixture) grant(t *testing.T, userID, levelID uint) {
	t.Helper()
	_, err := f.member.GrantMembership(context.Background(), &membership.GrantMembershipRequest{
		UserID: userID, MembershipLevelID: levelID,
	})
	require.NoError(t, err)
}

func TestGetVisible_GatingMatrix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gold := f.seedLevel(t, "Gold")
	silver := f.seedLevel(t, "Silver")

	goldUser := f.seedUser(t, "gold@example.com")
	f.grant(t, goldUser.ID, gold.ID)
	silverUser := f.seedUser(t, "silver@example.com")
	f.grant(t, silverUser.ID, silver.ID)
	freeUser := f.seedUser(t, "free@example.com")

	free, err := f.svc.Create(ctx, &CreateRequest{Title: "Welcome", ContentType: types.ContentTypeArticle, IsPublished: true})
	require.NoError(t, err)
	gated, err := f.svc.Create(ctx, &CreateRequest{Title: "Gold only", ContentType: types.ContentTypeVideo, RequiredMembershipLevelID: &gold.ID, IsPublished: true})
	require.NoError(t, err)
	draft, err := f.svc.Create(ctx, &CreateRequest{Title: "Draft", ContentType: types.ContentTypeArticle, IsPublished: false})
	require.NoError(t, err)

	cases := []struct {
		name      string
		contentID uint
		caller    *uint
		visible   bool
	}{
		{"free content, anonymous", free.ID, nil, true},
		{"free content, member", free.ID, &goldUser.ID, true},
		{"gated content, anonymous", gated.ID, nil, false},
		{"gated content, no membership", gated.ID, &freeUser.ID, false},
		{"gated content, wrong level", gated.ID, &silverUser.ID, false},
		{"gated content, exact level", gated.ID, &goldUser.ID, true},
		{"unpublished, gated holder", draft.ID, &goldUser.ID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := f.svc.GetVisible(ctx, tc.contentID, tc.caller)
			require.NoError(t, err)
			if tc.visible {
				require.NotNil(t, c)
			} else {
				require.Nil(t, c)
			}
		})
	}
}

func TestGetVisible_MissingAndHiddenIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gold := f.seedLevel(t, "Gold")
	gated, err := f.svc.Create(ctx, &CreateRequest{Title: "Gold only", ContentType: types.ContentTypeVideo, RequiredMembershipLevelID: &gold.ID, IsPublished: true})
	require.NoError(t, err)

	hidden, err := f.svc.GetVisible(ctx, gated.ID, nil)
	require.NoError(t, err)
	missing, err := f.svc.GetVisible(ctx, 9999, nil)
	require.NoError(t, err)
	require.Equal(t, hidden, missing)
}

func TestUpdateContent_PublishToggleChangesVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, &CreateRequest{Title: "Post", ContentType: types.ContentTypeArticle, IsPublished: true})
	require.NoError(t, err)

	got, err := f.svc.GetVisible(ctx, c.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, got)

	off := false
	_, err = f.svc.UpdateContent(ctx, c.ID, &Update{IsPublished: &off})
	require.NoError(t, err)

	got, err = f.svc.GetVisible(ctx, c.ID, nil)
	require.NoError(t, err)
	require.Nil(t, got)

	on := true
	_, err = f.svc.UpdateContent(ctx, c.ID, &Update{IsPublished: &on})
	require.NoError(t, err)

	got, err = f.svc.GetVisible(ctx, c.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestUpdateContent_ClearRequiredLevelMakesFree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gold := f.seedLevel(t, "Gold")
	c, err := f.svc.Create(ctx, &CreateRequest{Title: "Gold only", ContentType: types.ContentTypeArticle, RequiredMembershipLevelID: &gold.ID, IsPublished: true})
	require.NoError(t, err)

	updated, err := f.svc.UpdateContent(ctx, c.ID, &Update{ClearRequiredMembershipLevel: true})
	require.NoError(t, err)
	require.Nil(t, updated.RequiredMembershipLevelID)

	got, err := f.svc.GetVisible(ctx, c.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestCreate_RejectsUnknownLevelAndType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bogus := uint(777)
	_, err := f.svc.Create(ctx, &CreateRequest{Title: "x", ContentType: types.ContentTypeArticle, RequiredMembershipLevelID: &bogus})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = f.svc.Create(ctx, &CreateRequest{Title: "x", ContentType: types.ContentType("podcast")})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestListVisible_FiltersPerCaller(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gold := f.seedLevel(t, "Gold")
	goldUser := f.seedUser(t, "gold@example.com")
	f.grant(t, goldUser.ID, gold.ID)

	_, err := f.svc.Create(ctx, &CreateRequest{Title: "Free", ContentType: types.ContentTypeArticle, IsPublished: true})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, &CreateRequest{Title: "Gold", ContentType: types.ContentTypeVideo, RequiredMembershipLevelID: &gold.ID, IsPublished: true})
	require.NoError(t, err)

	anon, err := f.svc.ListVisible(ctx, nil)
	require.NoError(t, err)
	require.Len(t, anon, 1)

	member, err := f.svc.ListVisible(ctx, &goldUser.ID)
	require.NoError(t, err)
	require.Len(t, member, 2)
}

func TestDelete_HardDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, &CreateRequest{Title: "gone", ContentType: types.ContentTypeArticle, IsPublished: true})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, c.ID))
	err = f.svc.Delete(ctx, c.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
