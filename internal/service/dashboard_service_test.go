package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
)

func newDashboardService(t *testing.T, db *gorm.DB) DashboardService {
	t.Helper()
	return NewDashboardService(repository.NewDashboardRepository(db), NewCacheService(nil))
}

func TestDashboardRejectsUnknownDataType(t *testing.T) {
	svc := newDashboardService(t, newTestDB(t))

	_, err := svc.Overview(context.Background(), dto.DashboardQuery{DataType: "bogus"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestDashboardRejectsBadYear(t *testing.T) {
	svc := newDashboardService(t, newTestDB(t))

	_, err := svc.Overview(context.Background(), dto.DashboardQuery{Year: "last-year"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestDashboardTotalIsSumOfKinds(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(t, db)
	owner := seedUser(t, db, model.RoleMember)

	category := &model.TraditionCategory{Name: "สงกรานต์"}
	require.NoError(t, db.Create(category).Error)

	require.NoError(t, db.Create(&model.Tradition{
		CategoryID:          category.ID,
		Name:                "ปีใหม่เมือง",
		Location:            model.Location{District: "ในเมือง", Amphoe: "เมือง", Province: "เชียงใหม่", Type: "ภาคเหนือ"},
		History:             "h",
		AlcoholFreeApproach: "a",
		StartYear:           2568,
		UserID:              owner.ID,
	}).Error)

	require.NoError(t, db.Create(&model.PublicPolicy{
		Name:        "ธรรมนูญตำบล",
		SigningDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Level:       model.LevelSubDistrict,
		Location:    model.Location{District: "ในเมือง", Amphoe: "เมือง", Province: "น่าน", Type: "ภาคเหนือ"},
		Content:     "c",
		Summary:     "s",
		UserID:      owner.ID,
	}).Error)

	resp, err := svc.Overview(context.Background(), dto.DashboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TraditionCount)
	assert.Equal(t, int64(1), resp.PublicPolicyCount)
	assert.Equal(t, int64(0), resp.EthnicGroupCount)
	assert.Equal(t, int64(0), resp.CreativeActivityCount)
	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Equal(t, int64(1), resp.UserCount)

	// The new tradition's category shows up in its chart.
	require.Len(t, resp.TraditionChart, 1)
	assert.Equal(t, "สงกรานต์", resp.TraditionChart[0].Name)
	assert.Equal(t, int64(1), resp.TraditionChart[0].Count)

	// Echoed filters resolve to "all" defaults.
	assert.Equal(t, "all", resp.Filters.DataType)
	assert.Equal(t, "all", resp.Filters.Year)
}

func TestDashboardYearAndRegionFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(t, db)
	owner := seedUser(t, db, model.RoleMember)

	category := &model.TraditionCategory{Name: "ประเพณี"}
	require.NoError(t, db.Create(category).Error)

	for _, row := range []struct {
		province, region string
		year             int
	}{
		{"เชียงใหม่", "ภาคเหนือ", 2568},
		{"ขอนแก่น", "ภาคตะวันออกเฉียงเหนือ", 2568},
		{"เชียงราย", "ภาคเหนือ", 2566},
	} {
		require.NoError(t, db.Create(&model.Tradition{
			CategoryID:          category.ID,
			Name:                "งาน " + row.province,
			Location:            model.Location{District: "d", Amphoe: "a", Province: row.province, Type: row.region},
			History:             "h",
			AlcoholFreeApproach: "a",
			StartYear:           row.year,
			UserID:              owner.ID,
		}).Error)
	}

	resp, err := svc.Overview(context.Background(), dto.DashboardQuery{
		DataType: "tradition",
		Year:     "2568",
		Region:   "ภาคเหนือ",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TraditionCount)
	assert.Equal(t, int64(1), resp.TotalCount)
	// Other kinds are not fetched for a scoped dataType.
	assert.Empty(t, resp.PublicPolicyChart)
	assert.Equal(t, "2568", resp.Filters.Year)
}

func TestDashboardAllRegionAndProvinceMeanNoFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(t, db)
	owner := seedUser(t, db, model.RoleMember)

	category := &model.TraditionCategory{Name: "สงกรานต์"}
	require.NoError(t, db.Create(category).Error)

	require.NoError(t, db.Create(&model.Tradition{
		CategoryID:          category.ID,
		Name:                "ปีใหม่เมือง",
		Location:            model.Location{District: "d", Amphoe: "a", Province: "เชียงใหม่", Type: "ภาคเหนือ"},
		History:             "h",
		AlcoholFreeApproach: "a",
		StartYear:           2568,
		UserID:              owner.ID,
	}).Error)

	// The literal "all" must match every region and province, not a region
	// named "all".
	resp, err := svc.Overview(context.Background(), dto.DashboardQuery{
		Region:   "all",
		Province: "all",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TraditionCount)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.TraditionChart, 1)
	assert.Len(t, resp.RecentActivities, 1)
}

func TestMergeRecentCapsAndOrders(t *testing.T) {
	now := time.Now()

	var traditions []model.Tradition
	for i := 0; i < 4; i++ {
		traditions = append(traditions, model.Tradition{
			Name:      "t",
			Location:  model.Location{Province: "เชียงใหม่"},
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	ethnic := []model.EthnicGroup{{
		Name:      "newest",
		Location:  model.Location{Province: "น่าน"},
		CreatedAt: now.Add(time.Hour),
	}}

	merged := mergeRecent(traditions, ethnic, nil)

	require.Len(t, merged, 5)
	assert.Equal(t, "newest", merged[0].Name)
	assert.Equal(t, model.OwnerEthnicGroup, merged[0].Type)
	for i := 1; i < len(merged); i++ {
		assert.False(t, merged[i].CreatedAt.After(merged[i-1].CreatedAt))
	}
}
