package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

// DashboardFilter is the resolved dashboard predicate. Nil/empty fields
// mean "all".
type DashboardFilter struct {
	Year     *int // Buddhist Era
	Region   string
	Province string
}

// ChartRow is one group of a category or level breakdown. Groups come out
// of an inner join + GROUP BY, so zero-count rows never appear.
type ChartRow struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// PolicySigningRange converts a Buddhist Era year to the half-open
// Gregorian interval [Jan 1, Jan 1 of the next year) used for signing-date
// filters.
func PolicySigningRange(beYear int) (time.Time, time.Time) {
	start := time.Date(beYear-543, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

type DashboardRepository interface {
	CountTraditions(ctx context.Context, f DashboardFilter) (int64, error)
	CountPublicPolicies(ctx context.Context, f DashboardFilter) (int64, error)
	CountEthnicGroups(ctx context.Context, f DashboardFilter) (int64, error)
	CountCreativeActivities(ctx context.Context, f DashboardFilter) (int64, error)
	CountUsers(ctx context.Context) (int64, error)

	TraditionChart(ctx context.Context, f DashboardFilter) ([]ChartRow, error)
	PublicPolicyChart(ctx context.Context, f DashboardFilter) ([]ChartRow, error)
	EthnicGroupChart(ctx context.Context, f DashboardFilter) ([]ChartRow, error)
	CreativeActivityChart(ctx context.Context, f DashboardFilter) ([]ChartRow, error)

	RecentTraditions(ctx context.Context, f DashboardFilter, limit int) ([]model.Tradition, error)
	RecentPublicPolicies(ctx context.Context, f DashboardFilter, limit int) ([]model.PublicPolicy, error)
	RecentEthnicGroups(ctx context.Context, f DashboardFilter, limit int) ([]model.EthnicGroup, error)
	RecentCreativeActivities(ctx context.Context, f DashboardFilter, limit int) ([]model.CreativeActivity, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// scopeStartYear applies the shared predicate for the three tables keyed by
// a Buddhist Era start year. Columns are table-qualified so the same scope
// works inside joined chart queries.
func scopeStartYear(q *gorm.DB, table string, f DashboardFilter) *gorm.DB {
	if f.Region != "" {
		q = q.Where(table+".type = ?", f.Region)
	}
	if f.Province != "" {
		q = q.Where(table+".province = ?", f.Province)
	}
	if f.Year != nil {
		q = q.Where(table+".start_year = ?", *f.Year)
	}
	return q
}

// scopeSigningDate is the public-policy variant: the year filter becomes a
// half-open Gregorian date range.
func scopeSigningDate(q *gorm.DB, f DashboardFilter) *gorm.DB {
	if f.Region != "" {
		q = q.Where("public_policies.type = ?", f.Region)
	}
	if f.Province != "" {
		q = q.Where("public_policies.province = ?", f.Province)
	}
	if f.Year != nil {
		start, end := PolicySigningRange(*f.Year)
		q = q.Where("public_policies.signing_date >= ? AND public_policies.signing_date < ?", start, end)
	}
	return q
}

func (r *dashboardRepository) CountTraditions(ctx context.Context, f DashboardFilter) (int64, error) {
	var count int64
	q := scopeStartYear(r.db.WithContext(ctx).Model(&model.Tradition{}), "traditions", f)
	err := q.Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountPublicPolicies(ctx context.Context, f DashboardFilter) (int64, error) {
	var count int64
	q := scopeSigningDate(r.db.WithContext(ctx).Model(&model.PublicPolicy{}), f)
	err := q.Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountEthnicGroups(ctx context.Context, f DashboardFilter) (int64, error) {
	var count int64
	q := scopeStartYear(r.db.WithContext(ctx).Model(&model.EthnicGroup{}), "ethnic_groups", f)
	err := q.Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountCreativeActivities(ctx context.Context, f DashboardFilter) (int64, error) {
	var count int64
	q := scopeStartYear(r.db.WithContext(ctx).Model(&model.CreativeActivity{}), "creative_activities", f)
	err := q.Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) TraditionChart(ctx context.Context, f DashboardFilter) ([]ChartRow, error) {
	var rows []ChartRow
	q := r.db.WithContext(ctx).Model(&model.Tradition{}).
		Select("tradition_categories.name AS name, COUNT(traditions.id) AS count").
		Joins("JOIN tradition_categories ON tradition_categories.id = traditions.category_id")
	q = scopeStartYear(q, "traditions", f)
	err := q.Group("tradition_categories.name").Order("count DESC").Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) PublicPolicyChart(ctx context.Context, f DashboardFilter) ([]ChartRow, error) {
	var rows []ChartRow
	q := r.db.WithContext(ctx).Model(&model.PublicPolicy{}).
		Select("public_policies.level AS name, COUNT(public_policies.id) AS count")
	q = scopeSigningDate(q, f)
	err := q.Group("public_policies.level").Order("count DESC").Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) EthnicGroupChart(ctx context.Context, f DashboardFilter) ([]ChartRow, error) {
	var rows []ChartRow
	q := r.db.WithContext(ctx).Model(&model.EthnicGroup{}).
		Select("ethnic_categories.name AS name, COUNT(ethnic_groups.id) AS count").
		Joins("JOIN ethnic_categories ON ethnic_categories.id = ethnic_groups.category_id")
	q = scopeStartYear(q, "ethnic_groups", f)
	err := q.Group("ethnic_categories.name").Order("count DESC").Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CreativeActivityChart(ctx context.Context, f DashboardFilter) ([]ChartRow, error) {
	var rows []ChartRow
	q := r.db.WithContext(ctx).Model(&model.CreativeActivity{}).
		Select("creative_categories.name AS name, COUNT(creative_activities.id) AS count").
		Joins("JOIN creative_categories ON creative_categories.id = creative_activities.category_id")
	q = scopeStartYear(q, "creative_activities", f)
	err := q.Group("creative_categories.name").Order("count DESC").Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RecentTraditions(ctx context.Context, f DashboardFilter, limit int) ([]model.Tradition, error) {
	var rows []model.Tradition
	q := scopeStartYear(r.db.WithContext(ctx).Model(&model.Tradition{}), "traditions", f)
	err := q.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RecentPublicPolicies(ctx context.Context, f DashboardFilter, limit int) ([]model.PublicPolicy, error) {
	var rows []model.PublicPolicy
	q := scopeSigningDate(r.db.WithContext(ctx).Model(&model.PublicPolicy{}), f)
	err := q.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RecentEthnicGroups(ctx context.Context, f DashboardFilter, limit int) ([]model.EthnicGroup, error) {
	var rows []model.EthnicGroup
	q := scopeStartYear(r.db.WithContext(ctx).Model(&model.EthnicGroup{}), "ethnic_groups", f)
	err := q.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RecentCreativeActivities(ctx context.Context, f DashboardFilter, limit int) ([]model.CreativeActivity, error) {
	var rows []model.CreativeActivity
	q := scopeStartYear(r.db.WithContext(ctx).Model(&model.CreativeActivity{}), "creative_activities", f)
	err := q.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}
