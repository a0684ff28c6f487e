package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

func TestPolicySigningRange(t *testing.T) {
	start, end := PolicySigningRange(2568)

	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)

	// Half-open: Dec 31 23:59:59 is inside, Jan 1 of the next year is not.
	lastSecond := time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)
	assert.True(t, !lastSecond.Before(start) && lastSecond.Before(end))
	assert.False(t, end.Before(end))
}

func seedTradition(t *testing.T, db *gorm.DB, category *model.TraditionCategory, owner *model.User, province, region string, year int) *model.Tradition {
	t.Helper()

	tradition := &model.Tradition{
		CategoryID: category.ID,
		Name:       "งานบุญ " + province,
		Location: model.Location{
			District: "ในเมือง",
			Amphoe:   "เมือง",
			Province: province,
			Type:     region,
		},
		History:             "history",
		AlcoholFreeApproach: "approach",
		StartYear:           year,
		UserID:              owner.ID,
	}
	require.NoError(t, db.Create(tradition).Error)
	return tradition
}

func seedPolicy(t *testing.T, db *gorm.DB, owner *model.User, level model.PolicyLevel, province, region string, signed time.Time) *model.PublicPolicy {
	t.Helper()

	policy := &model.PublicPolicy{
		Name:        "ธรรมนูญ " + province,
		SigningDate: signed,
		Level:       level,
		Location: model.Location{
			District: "ในเมือง",
			Amphoe:   "เมือง",
			Province: province,
			Type:     region,
		},
		Content: "content",
		Summary: "summary",
		UserID:  owner.ID,
	}
	require.NoError(t, db.Create(policy).Error)
	return policy
}

func TestDashboardCountsRespectFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDashboardRepository(db)

	owner := seedUser(t, db, model.RoleMember)
	category := seedTraditionCategory(t, db, "ประเพณีท้องถิ่น")

	seedTradition(t, db, category, owner, "เชียงใหม่", "ภาคเหนือ", 2568)
	seedTradition(t, db, category, owner, "เชียงราย", "ภาคเหนือ", 2567)
	seedTradition(t, db, category, owner, "ขอนแก่น", "ภาคตะวันออกเฉียงเหนือ", 2568)

	all, err := repo.CountTraditions(ctx, DashboardFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)

	year := 2568
	byYear, err := repo.CountTraditions(ctx, DashboardFilter{Year: &year})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byYear)

	north, err := repo.CountTraditions(ctx, DashboardFilter{Region: "ภาคเหนือ"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), north)

	northern2568, err := repo.CountTraditions(ctx, DashboardFilter{Year: &year, Region: "ภาคเหนือ", Province: "เชียงใหม่"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), northern2568)
}

func TestDashboardPolicyYearBoundaries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDashboardRepository(db)

	owner := seedUser(t, db, model.RoleMember)

	// BE 2568 covers the Gregorian year 2025.
	seedPolicy(t, db, owner, model.LevelProvincial, "น่าน", "ภาคเหนือ", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	seedPolicy(t, db, owner, model.LevelProvincial, "น่าน", "ภาคเหนือ", time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC))
	seedPolicy(t, db, owner, model.LevelProvincial, "น่าน", "ภาคเหนือ", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	seedPolicy(t, db, owner, model.LevelProvincial, "น่าน", "ภาคเหนือ", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC))

	year := 2568
	count, err := repo.CountPublicPolicies(ctx, DashboardFilter{Year: &year})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTraditionChartDropsEmptyCategories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDashboardRepository(db)

	owner := seedUser(t, db, model.RoleMember)
	used := seedTraditionCategory(t, db, "สงกรานต์")
	seedTraditionCategory(t, db, "ลอยกระทง") // no rows point here

	seedTradition(t, db, used, owner, "เชียงใหม่", "ภาคเหนือ", 2568)
	seedTradition(t, db, used, owner, "ลำพูน", "ภาคเหนือ", 2568)

	rows, err := repo.TraditionChart(ctx, DashboardFilter{})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "สงกรานต์", rows[0].Name)
	assert.Equal(t, int64(2), rows[0].Count)
}

func TestPublicPolicyChartGroupsByLevel(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDashboardRepository(db)

	owner := seedUser(t, db, model.RoleMember)
	signed := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	seedPolicy(t, db, owner, model.LevelProvincial, "น่าน", "ภาคเหนือ", signed)
	seedPolicy(t, db, owner, model.LevelProvincial, "แพร่", "ภาคเหนือ", signed)
	seedPolicy(t, db, owner, model.LevelVillage, "น่าน", "ภาคเหนือ", signed)

	rows, err := repo.PublicPolicyChart(ctx, DashboardFilter{})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	// Ordered by count descending.
	assert.Equal(t, string(model.LevelProvincial), rows[0].Name)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.Equal(t, string(model.LevelVillage), rows[1].Name)
	assert.Equal(t, int64(1), rows[1].Count)
}

func TestRecentTraditionsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDashboardRepository(db)

	owner := seedUser(t, db, model.RoleMember)
	category := seedTraditionCategory(t, db, "ประเพณี")

	old := seedTradition(t, db, category, owner, "เชียงใหม่", "ภาคเหนือ", 2566)
	require.NoError(t, db.Model(old).UpdateColumn("created_at", time.Now().Add(-48*time.Hour)).Error)
	newest := seedTradition(t, db, category, owner, "น่าน", "ภาคเหนือ", 2568)

	rows, err := repo.RecentTraditions(ctx, DashboardFilter{}, 5)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, newest.ID, rows[0].ID)
	assert.Equal(t, old.ID, rows[1].ID)
}
