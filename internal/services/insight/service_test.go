package insight

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
	"github.com/bobmcallan/papertrade/internal/models"
	"github.com/bobmcallan/papertrade/internal/services/portfolio"
	"github.com/bobmcallan/papertrade/internal/storage"
	"github.com/bobmcallan/papertrade/internal/storage/localstate"
)

type mockPortfolio struct {
	interfaces.PortfolioService
	snap *models.Snapshot
	err  error
}

func (m *mockPortfolio) Snapshot(_ context.Context, userID string) (*models.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := *m.snap
	s.UserID = userID
	return &s, nil
}

func snapshotOf(cash float64, positions ...models.Position) *models.Snapshot {
	return &models.Snapshot{
		Summary:   models.PortfolioSummary{TotalCash: cash},
		Positions: portfolio.Views(positions),
		Totals:    portfolio.Aggregate(positions),
	}
}

// concentrated triggers concentration-AAPL, single-asset-type and significant-gain
func concentrated() *models.Snapshot {
	return snapshotOf(0,
		pos("AAPL", models.AssetTypeStock, 900, 600),
		pos("MSFT", models.AssetTypeStock, 400, 400),
	)
}

func newService(t *testing.T, kv interfaces.KeyValueStorage, snap *models.Snapshot) *Service {
	t.Helper()
	logger := common.NewSilentLogger()
	return NewService(&mockPortfolio{snap: snap}, localstate.New(kv, logger), DefaultThresholds(), logger)
}

func TestForUser_TruncatesToDisplayLimit(t *testing.T) {
	svc := newService(t, storage.NewMemoryKV(), concentrated())

	list, err := svc.ForUser(context.Background(), "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 0, list.Hidden)
	assert.Equal(t, []string{"concentration-AAPL", IDSingleAssetType}, ids(list.Insights))

	list, err = svc.ForUser(context.Background(), "u1", true)
	require.NoError(t, err)
	assert.Len(t, list.Insights, 3)
}

func TestForUser_DismissedAreExcluded(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, storage.NewMemoryKV(), concentrated())

	require.NoError(t, svc.Dismiss(ctx, "u1", "concentration-AAPL"))

	list, err := svc.ForUser(ctx, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Hidden)
	assert.Equal(t, []string{IDSingleAssetType, IDSignificantGain}, ids(list.Insights))

	// another user still sees it
	other, err := svc.ForUser(ctx, "u2", false)
	require.NoError(t, err)
	assert.Equal(t, "concentration-AAPL", other.Insights[0].ID)

	require.NoError(t, svc.ResetDismissed(ctx, "u1"))
	list, err = svc.ForUser(ctx, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, "concentration-AAPL", list.Insights[0].ID)
}

func TestDismissal_RoundTripAcrossReload(t *testing.T) {
	ctx := context.Background()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "localstate")

	m, err := storage.NewManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	require.NoError(t, newService(t, m.KeyValueStorage(), concentrated()).Dismiss(ctx, "u1", "concentration-AAPL"))
	require.NoError(t, m.Close())

	m2, err := storage.NewManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	defer m2.Close()

	svc := newService(t, m2.KeyValueStorage(), concentrated())
	for i := 0; i < 2; i++ {
		list, err := svc.ForUser(ctx, "u1", false)
		require.NoError(t, err)
		_, ok := find(list.Insights, "concentration-AAPL")
		assert.False(t, ok, "dismissed insight must stay hidden on pass %d", i)
	}
}

func TestForUser_PortfolioError(t *testing.T) {
	logger := common.NewSilentLogger()
	svc := NewService(&mockPortfolio{err: errors.New("backend down")}, localstate.New(storage.NewMemoryKV(), logger), DefaultThresholds(), logger)

	_, err := svc.ForUser(context.Background(), "u1", false)
	assert.Error(t, err)
}

func TestDismiss_RequiresID(t *testing.T) {
	svc := newService(t, storage.NewMemoryKV(), concentrated())
	assert.Error(t, svc.Dismiss(context.Background(), "u1", ""))
}
