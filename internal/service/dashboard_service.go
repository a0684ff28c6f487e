package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
)

// Dashboard data types. "all" aggregates every content kind.
const (
	dataTypeAll       = "all"
	dataTypeTradition = "tradition"
	dataTypePolicy    = "publicPolicy"
	dataTypeEthnic    = "ethnicGroup"
	dataTypeCreative  = "creativeActivity"
)

const recentLimit = 5

type DashboardService interface {
	Overview(ctx context.Context, q dto.DashboardQuery) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo  repository.DashboardRepository
	cache CacheService
}

func NewDashboardService(repo repository.DashboardRepository, cache CacheService) DashboardService {
	return &dashboardService{repo: repo, cache: cache}
}

// resolveFilter validates the raw query. An unknown dataType or a
// non-numeric year is a client error, not an empty result.
func resolveFilter(q *dto.DashboardQuery) (repository.DashboardFilter, error) {
	if q.DataType == "" {
		q.DataType = dataTypeAll
	}
	switch q.DataType {
	case dataTypeAll, dataTypeTradition, dataTypePolicy, dataTypeEthnic, dataTypeCreative:
	default:
		return repository.DashboardFilter{}, fmt.Errorf("unknown dataType %q: %w", q.DataType, apperror.ErrInvalidInput)
	}

	if q.Year == "" {
		q.Year = "all"
	}

	filter := repository.DashboardFilter{
		Region:   q.Region,
		Province: q.Province,
	}
	// "all" is the literal no-constraint value, same as for year.
	if filter.Region == "all" {
		filter.Region = ""
	}
	if filter.Province == "all" {
		filter.Province = ""
	}
	if q.Year != "all" {
		year, err := strconv.Atoi(q.Year)
		if err != nil {
			return repository.DashboardFilter{}, fmt.Errorf("year must be %q or a Buddhist Era year: %w", "all", apperror.ErrInvalidInput)
		}
		filter.Year = &year
	}

	return filter, nil
}

func (s *dashboardService) Overview(ctx context.Context, q dto.DashboardQuery) (*dto.DashboardResponse, error) {
	filter, err := resolveFilter(&q)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%s:%s:%s:%s", cacheDashboard, q.DataType, q.Year, q.Region, q.Province)
	var cached dto.DashboardResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	resp := &dto.DashboardResponse{
		TraditionChart:        []dto.ChartRow{},
		PublicPolicyChart:     []dto.ChartRow{},
		EthnicGroupChart:      []dto.ChartRow{},
		CreativeActivityChart: []dto.ChartRow{},
		RecentActivities:      []dto.RecentActivity{},
		RecentPolicies:        []dto.RecentPolicy{},
		Filters: dto.DashboardFilters{
			DataType: q.DataType,
			Year:     q.Year,
			Region:   q.Region,
			Province: q.Province,
		},
	}

	wantTradition := q.DataType == dataTypeAll || q.DataType == dataTypeTradition
	wantPolicy := q.DataType == dataTypeAll || q.DataType == dataTypePolicy
	wantEthnic := q.DataType == dataTypeAll || q.DataType == dataTypeEthnic
	wantCreative := q.DataType == dataTypeAll || q.DataType == dataTypeCreative

	var (
		recentTraditions []model.Tradition
		recentPolicies   []model.PublicPolicy
		recentEthnic     []model.EthnicGroup
		recentCreative   []model.CreativeActivity
	)

	// Independent queries run concurrently; each writes its own field.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.repo.CountUsers(gctx)
		resp.UserCount = count
		return err
	})

	if wantTradition {
		g.Go(func() error {
			count, err := s.repo.CountTraditions(gctx, filter)
			resp.TraditionCount = count
			return err
		})
		g.Go(func() error {
			rows, err := s.repo.TraditionChart(gctx, filter)
			if rows != nil {
				resp.TraditionChart = toChartRows(rows)
			}
			return err
		})
		g.Go(func() error {
			rows, err := s.repo.RecentTraditions(gctx, filter, recentLimit)
			recentTraditions = rows
			return err
		})
	}

	if wantPolicy {
		g.Go(func() error {
			count, err := s.repo.CountPublicPolicies(gctx, filter)
			resp.PublicPolicyCount = count
			return err
		})
		g.Go(func() error {
			rows, err := s.repo.PublicPolicyChart(gctx, filter)
			if rows != nil {
				resp.PublicPolicyChart = toChartRows(rows)
			}
			return err
		})
		g.Go(func() error {
			rows, err := s.repo.RecentPublicPolicies(gctx, filter, recentLimit)
			recentPolicies = rows
			return err
		})
	}

	if wantEthnic {
		g.Go(func() error {
			count, err := s.repo.CountEthnicGroups(gctx, filter)
			resp.EthnicGroupCount = count
			return err
		})
		g.Go(func() error {
			rows, err := s.repo.EthnicGroupChart(gctx, filter)
			if rows != nil {
				resp.EthnicGroupChart = toChartRows(rows)
			}
			return err
		})
		g.Go(func() error {
			rows, err := s.repo.RecentEthnicGroups(gctx, filter, recentLimit)
			recentEthnic = rows
			return err
		})
	}

	if wantCreative {
		g.Go(func() error {
			count, err := s.repo.CountCreativeActivities(gctx, filter)
			resp.CreativeActivityCount = count
			return err
		})
		g.Go(func() error {
			rows, err := s.repo.CreativeActivityChart(gctx, filter)
			if rows != nil {
				resp.CreativeActivityChart = toChartRows(rows)
			}
			return err
		})
		g.Go(func() error {
			rows, err := s.repo.RecentCreativeActivities(gctx, filter, recentLimit)
			recentCreative = rows
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.TotalCount = resp.TraditionCount + resp.PublicPolicyCount + resp.EthnicGroupCount + resp.CreativeActivityCount

	resp.RecentActivities = mergeRecent(recentTraditions, recentEthnic, recentCreative)

	for _, p := range recentPolicies {
		resp.RecentPolicies = append(resp.RecentPolicies, dto.RecentPolicy{
			ID:          p.ID.String(),
			Name:        p.Name,
			Level:       string(p.Level),
			Province:    p.Province,
			SigningDate: p.SigningDate,
		})
	}

	s.cache.Set(ctx, key, resp, 5*time.Minute)
	return resp, nil
}

func toChartRows(rows []repository.ChartRow) []dto.ChartRow {
	out := make([]dto.ChartRow, len(rows))
	for i, r := range rows {
		out[i] = dto.ChartRow{Name: r.Name, Count: r.Count}
	}
	return out
}

// mergeRecent interleaves the per-kind feeds newest-first, capped to
// recentLimit entries overall.
func mergeRecent(traditions []model.Tradition, ethnic []model.EthnicGroup, creative []model.CreativeActivity) []dto.RecentActivity {
	merged := make([]dto.RecentActivity, 0, len(traditions)+len(ethnic)+len(creative))

	for _, t := range traditions {
		merged = append(merged, dto.RecentActivity{
			ID:        t.ID.String(),
			Name:      t.Name,
			Type:      model.OwnerTradition,
			Province:  t.Province,
			CreatedAt: t.CreatedAt,
		})
	}
	for _, e := range ethnic {
		merged = append(merged, dto.RecentActivity{
			ID:        e.ID.String(),
			Name:      e.Name,
			Type:      model.OwnerEthnicGroup,
			Province:  e.Province,
			CreatedAt: e.CreatedAt,
		})
	}
	for _, a := range creative {
		merged = append(merged, dto.RecentActivity{
			ID:        a.ID.String(),
			Name:      a.Name,
			Type:      model.OwnerCreativeActivity,
			Province:  a.Province,
			CreatedAt: a.CreatedAt,
		})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if len(merged) > recentLimit {
		merged = merged[:recentLimit]
	}
	return merged
}
