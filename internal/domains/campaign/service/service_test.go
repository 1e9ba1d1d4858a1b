package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-backend/internal/domains/campaign/model"
	playerModel "campaign-backend/internal/domains/player/model"
	"campaign-backend/internal/shared/apperror"
)

// =====================================================
// FAKES
// =====================================================

type memoryCampaignRepository struct {
	mu          sync.Mutex
	campaigns   map[int64]*model.Campaign
	memberships map[[2]int64]*model.Membership // {campaignID, userID}
	nextID      int64
	lookups     int
	failCreate  error
}

func newMemoryCampaignRepository() *memoryCampaignRepository {
	return &memoryCampaignRepository{
		campaigns:   make(map[int64]*model.Campaign),
		memberships: make(map[[2]int64]*model.Membership),
	}
}

func (r *memoryCampaignRepository) GetByID(_ context.Context, id int64) (*model.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	c, ok := r.campaigns[id]
	if !ok {
		return nil, model.ErrCampaignNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memoryCampaignRepository) ListVisible(_ context.Context, userID *int64) ([]*model.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Campaign
	for id, c := range r.campaigns {
		visible := !c.Private
		if userID != nil {
			if _, ok := r.memberships[[2]int64{id, *userID}]; ok {
				visible = true
			}
		}
		if visible {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryCampaignRepository) CreateWithOwner(_ context.Context, campaign *model.Campaign, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.nextID++
	campaign.ID = r.nextID
	copied := *campaign
	r.campaigns[campaign.ID] = &copied
	r.memberships[[2]int64{campaign.ID, ownerID}] = &model.Membership{
		ID: int64(len(r.memberships) + 1), UserID: ownerID, CampaignID: campaign.ID, Role: model.RoleOwner,
	}
	return nil
}

func (r *memoryCampaignRepository) Update(_ context.Context, campaign *model.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[campaign.ID]; !ok {
		return model.ErrCampaignNotFound
	}
	copied := *campaign
	r.campaigns[campaign.ID] = &copied
	return nil
}

func (r *memoryCampaignRepository) GetMembership(_ context.Context, campaignID, userID int64) (*model.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[[2]int64{campaignID, userID}]
	if !ok {
		return nil, model.ErrMembershipNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *memoryCampaignRepository) UpsertMembership(_ context.Context, campaignID, userID int64, role model.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int64{campaignID, userID}
	if m, ok := r.memberships[key]; ok {
		m.Role = role
		return false, nil
	}
	r.memberships[key] = &model.Membership{
		ID: int64(len(r.memberships) + 1), UserID: userID, CampaignID: campaignID, Role: role,
	}
	return true, nil
}

func (r *memoryCampaignRepository) UpdateMembershipRole(_ context.Context, campaignID, userID int64, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[[2]int64{campaignID, userID}]
	if !ok {
		return model.ErrMembershipNotFound
	}
	m.Role = role
	return nil
}

func (r *memoryCampaignRepository) membershipCount(campaignID int64) (total, owners int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, m := range r.memberships {
		if key[0] != campaignID {
			continue
		}
		total++
		if m.Role == model.RoleOwner {
			owners++
		}
	}
	return total, owners
}

type memoryPlayerRepository struct {
	players []*playerModel.Player
}

func (r *memoryPlayerRepository) GetByID(_ context.Context, id int64) (*playerModel.Player, error) {
	for _, p := range r.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, playerModel.ErrPlayerNotFound
}

func (r *memoryPlayerRepository) GetByTelegramID(_ context.Context, telegramID int64) (*playerModel.Player, error) {
	for _, p := range r.players {
		if p.TelegramID == telegramID {
			return p, nil
		}
	}
	return nil, playerModel.ErrPlayerNotFound
}

func (r *memoryPlayerRepository) GetOrCreateByTelegramID(_ context.Context, player *playerModel.Player) (bool, error) {
	if existing, err := r.GetByTelegramID(context.Background(), player.TelegramID); err == nil {
		*player = *existing
		return false, nil
	}
	player.ID = int64(len(r.players) + 1)
	r.players = append(r.players, player)
	return true, nil
}

type memoryBlobStore struct {
	objects map[string][]byte
}

func (s *memoryBlobStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.objects[key] = data
	return "http://blobs/" + key, nil
}

func (s *memoryBlobStore) Download(_ context.Context, key string) ([]byte, error) {
	return s.objects[key], nil
}

func (s *memoryBlobStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

// fakeIconEncoder accepts payloads starting with "img"
type fakeIconEncoder struct{}

func (fakeIconEncoder) ToPNG(data []byte) ([]byte, error) {
	if len(data) < 3 || string(data[:3]) != "img" {
		return nil, errors.New("not an image")
	}
	return append([]byte("png:"), data...), nil
}

type fixture struct {
	svc       ServiceInterface
	campaigns *memoryCampaignRepository
	blobs     *memoryBlobStore
}

// players: id 1 (telegram 100, verified), id 2 (telegram 200), id 3 (telegram 300)
func newFixture() *fixture {
	campaigns := newMemoryCampaignRepository()
	players := &memoryPlayerRepository{players: []*playerModel.Player{
		{ID: 1, TelegramID: 100, Verified: true},
		{ID: 2, TelegramID: 200},
		{ID: 3, TelegramID: 300},
	}}
	blobs := &memoryBlobStore{objects: make(map[string][]byte)}
	return &fixture{
		svc:       NewCampaignService(campaigns, players, blobs, fakeIconEncoder{}),
		campaigns: campaigns,
		blobs:     blobs,
	}
}

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func (f *fixture) create(t *testing.T, private bool) int64 {
	t.Helper()
	res, err := f.svc.CreateCampaign(context.Background(), model.CreateCampaignRequest{TelegramID: 100, Title: "Dungeon"})
	require.NoError(t, err)
	if private {
		f.campaigns.campaigns[res.CampaignID].Private = true
	}
	return res.CampaignID
}

// =====================================================
// TESTS
// =====================================================

func TestCreateCampaignMakesCreatorSoleOwner(t *testing.T) {
	f := newFixture()

	res, err := f.svc.CreateCampaign(context.Background(), model.CreateCampaignRequest{
		TelegramID:  100,
		Title:       "Curse of Strahd",
		Description: strPtr("gothic horror"),
	})
	require.NoError(t, err)
	assert.Equal(t, "created", res.Message)

	total, owners := f.campaigns.membershipCount(res.CampaignID)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, owners)

	stored := f.campaigns.campaigns[res.CampaignID]
	assert.True(t, stored.Verified, "verified is inherited from the creator")
	assert.Equal(t, "gothic horror", stored.Description)
	assert.Nil(t, stored.IconKey)
}

func TestCreateCampaignUnknownPlayer(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateCampaign(context.Background(), model.CreateCampaignRequest{TelegramID: 999, Title: "Nope"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Empty(t, f.campaigns.campaigns)
	assert.Empty(t, f.campaigns.memberships)
}

func TestCreateCampaignStoresIcon(t *testing.T) {
	f := newFixture()
	icon := base64.StdEncoding.EncodeToString([]byte("img-bytes"))

	res, err := f.svc.CreateCampaign(context.Background(), model.CreateCampaignRequest{
		TelegramID: 100, Title: "With Icon", Icon: &icon,
	})
	require.NoError(t, err)

	stored := f.campaigns.campaigns[res.CampaignID]
	require.NotNil(t, stored.IconKey)
	assert.Regexp(t, `^campaign_icons/With Icon_[0-9a-f]{8}\.png$`, *stored.IconKey)
	assert.Equal(t, []byte("png:img-bytes"), f.blobs.objects[*stored.IconKey])
	assert.Equal(t, "http://blobs/"+*stored.IconKey, *stored.IconURL)
}

func TestCreateCampaignInvalidIconCreatesNothing(t *testing.T) {
	for name, icon := range map[string]string{
		"not base64": "%%%not-base64%%%",
		"not image":  base64.StdEncoding.EncodeToString([]byte("plain text")),
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.CreateCampaign(context.Background(), model.CreateCampaignRequest{
				TelegramID: 100, Title: "Broken", Icon: &icon,
			})
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.ErrorIs(t, err, model.ErrInvalidIcon)
			assert.Empty(t, f.campaigns.campaigns)
			assert.Empty(t, f.blobs.objects)
		})
	}
}

func TestCreateCampaignRemovesIconWhenInsertFails(t *testing.T) {
	f := newFixture()
	f.campaigns.failCreate = errors.New("db down")
	icon := base64.StdEncoding.EncodeToString([]byte("img"))

	_, err := f.svc.CreateCampaign(context.Background(), model.CreateCampaignRequest{
		TelegramID: 100, Title: "Doomed", Icon: &icon,
	})
	require.Error(t, err)
	assert.Empty(t, f.blobs.objects)
}

func TestCreateCampaignValidation(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateCampaign(context.Background(), model.CreateCampaignRequest{TelegramID: 100})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestDecodeBase64Variants(t *testing.T) {
	for _, in := range []string{
		"aW1nLWRhdGE=",
		"aW1nLWRhdGE",
		"data:image/png;base64,aW1nLWRhdGE=",
	} {
		raw, err := decodeBase64(in)
		require.NoError(t, err, in)
		assert.Equal(t, []byte("img-data"), raw)
	}
}

func TestGetCampaignVisibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	public := f.create(t, false)
	private := f.create(t, true)

	got, err := f.svc.GetCampaign(ctx, public, nil)
	require.NoError(t, err)
	assert.Equal(t, public, got.ID)

	// Non-members see private campaigns as missing
	_, err = f.svc.GetCampaign(ctx, private, nil)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	_, err = f.svc.GetCampaign(ctx, private, int64Ptr(2))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	got, err = f.svc.GetCampaign(ctx, private, int64Ptr(1))
	require.NoError(t, err)
	assert.True(t, got.Private)

	_, err = f.svc.GetCampaign(ctx, 42, nil)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListCampaigns(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	public := f.create(t, false)
	private := f.create(t, true)

	anonymous, err := f.svc.ListCampaigns(ctx, nil)
	require.NoError(t, err)
	require.Len(t, anonymous, 1)
	assert.Equal(t, public, anonymous[0].ID)

	owner, err := f.svc.ListCampaigns(ctx, int64Ptr(1))
	require.NoError(t, err)
	require.Len(t, owner, 2)
	assert.Equal(t, []int64{public, private}, []int64{owner[0].ID, owner[1].ID})

	empty, err := newFixture().svc.ListCampaigns(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestAddMemberResetsRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, false)
	req := model.AddMemberRequest{CampaignID: id, OwnerID: 1, UserID: 2}

	res, err := f.svc.AddMember(ctx, req)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "User 2 added to campaign "+itoa(id), res.Message)

	_, err = f.svc.EditPermissions(ctx, model.EditPermissionsRequest{CampaignID: id, OwnerID: 1, UserID: 2, Status: intPtr(1)})
	require.NoError(t, err)

	res, err = f.svc.AddMember(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.Created)

	m, err := f.campaigns.GetMembership(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, model.RolePlayer, m.Role)

	total, _ := f.campaigns.membershipCount(id)
	assert.Equal(t, 2, total)
}

func TestAddMemberErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, false)

	_, err := f.svc.AddMember(ctx, model.AddMemberRequest{CampaignID: 99, OwnerID: 1, UserID: 2})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.svc.AddMember(ctx, model.AddMemberRequest{CampaignID: id, OwnerID: 2, UserID: 3})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = f.svc.AddMember(ctx, model.AddMemberRequest{CampaignID: id, OwnerID: 1, UserID: 77})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.svc.AddMember(ctx, model.AddMemberRequest{CampaignID: id, OwnerID: 1})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestAddMemberRequiresOwnerRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, false)

	_, err := f.svc.AddMember(ctx, model.AddMemberRequest{CampaignID: id, OwnerID: 1, UserID: 2})
	require.NoError(t, err)
	_, err = f.svc.EditPermissions(ctx, model.EditPermissionsRequest{CampaignID: id, OwnerID: 1, UserID: 2, Status: intPtr(1)})
	require.NoError(t, err)

	// A master is not an owner
	_, err = f.svc.AddMember(ctx, model.AddMemberRequest{CampaignID: id, OwnerID: 2, UserID: 3})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestEditPermissions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, false)
	_, err := f.svc.AddMember(ctx, model.AddMemberRequest{CampaignID: id, OwnerID: 1, UserID: 2})
	require.NoError(t, err)

	msg, err := f.svc.EditPermissions(ctx, model.EditPermissionsRequest{CampaignID: id, OwnerID: 1, UserID: 2, Status: intPtr(2)})
	require.NoError(t, err)
	assert.Contains(t, msg, "role to 2")

	m, err := f.campaigns.GetMembership(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, m.Role)
}

func TestEditPermissionsNeverCreates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, false)

	_, err := f.svc.EditPermissions(ctx, model.EditPermissionsRequest{CampaignID: id, OwnerID: 1, UserID: 3, Status: intPtr(1)})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	total, _ := f.campaigns.membershipCount(id)
	assert.Equal(t, 1, total)
}

func TestEditPermissionsRejectsStatusBeforeLookup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, status := range []int{-1, 3, 100} {
		_, err := f.svc.EditPermissions(ctx, model.EditPermissionsRequest{CampaignID: 99, OwnerID: 1, UserID: 2, Status: intPtr(status)})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.ErrorIs(t, err, model.ErrInvalidRole)
	}
	assert.Zero(t, f.campaigns.lookups)
}

func TestEditPermissionsRequiresStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, false)
	_, err := f.svc.AddMember(ctx, model.AddMemberRequest{CampaignID: id, OwnerID: 1, UserID: 2})
	require.NoError(t, err)
	_, err = f.svc.EditPermissions(ctx, model.EditPermissionsRequest{CampaignID: id, OwnerID: 1, UserID: 2, Status: intPtr(1)})
	require.NoError(t, err)

	lookups := f.campaigns.lookups
	_, err = f.svc.EditPermissions(ctx, model.EditPermissionsRequest{CampaignID: id, OwnerID: 1, UserID: 2})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.ErrorIs(t, err, model.ErrStatusRequired)
	assert.Equal(t, lookups, f.campaigns.lookups)

	m, err := f.campaigns.GetMembership(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMaster, m.Role)
}

func TestEditCampaign(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := base64.StdEncoding.EncodeToString([]byte("img-one"))

	res, err := f.svc.CreateCampaign(ctx, model.CreateCampaignRequest{TelegramID: 100, Title: "Edit Me", Icon: &first})
	require.NoError(t, err)
	oldKey := *f.campaigns.campaigns[res.CampaignID].IconKey

	second := base64.StdEncoding.EncodeToString([]byte("img-two"))
	updated, err := f.svc.EditCampaign(ctx, model.EditCampaignRequest{
		CampaignID: res.CampaignID, OwnerID: 1, Description: strPtr("new"), Icon: &second,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Description)
	require.NotNil(t, updated.Icon)

	newKey := *f.campaigns.campaigns[res.CampaignID].IconKey
	assert.NotEqual(t, oldKey, newKey)
	assert.NotContains(t, f.blobs.objects, oldKey)
	assert.Contains(t, f.blobs.objects, newKey)

	_, err = f.svc.EditCampaign(ctx, model.EditCampaignRequest{CampaignID: res.CampaignID, OwnerID: 2, Description: strPtr("x")})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func itoa(v int64) string {
	return fmt.Sprint(v)
}
