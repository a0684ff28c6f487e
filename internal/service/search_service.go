package service

import (
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

// Meilisearch index per entity type.
const (
	indexTraditions = "traditions"
	indexPolicies   = "public_policies"
	indexEthnic     = "ethnic_groups"
	indexCreative   = "creative_activities"
)

// SearchService keeps the public search indexes in sync with the database.
// All methods are no-ops when meilisearch is not configured.
type SearchService interface {
	IndexTradition(t *model.Tradition) error
	IndexPublicPolicy(p *model.PublicPolicy) error
	IndexEthnicGroup(e *model.EthnicGroup) error
	IndexCreativeActivity(a *model.CreativeActivity) error
	DeleteTradition(id string) error
	DeletePublicPolicy(id string) error
	DeleteEthnicGroup(id string) error
	DeleteCreativeActivity(id string) error
	GenerateSearchToken() (string, error)
}

type searchService struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
	sanitizer     *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndexes()
		s.initSigningKey()
	}
	return s
}

func (s *searchService) initIndexes() {
	filterable := []string{"province", "type", "category"}
	filterableInterface := make([]any, len(filterable))
	for i, v := range filterable {
		filterableInterface[i] = v
	}
	sortable := []string{"created_at", "view_count"}

	for _, index := range []string{indexTraditions, indexPolicies, indexEthnic, indexCreative} {
		if _, err := s.client.Index(index).UpdateFilterableAttributes(&filterableInterface); err != nil {
			log.Printf("failed to update %s filterable attributes: %v", index, err)
		}
		if _, err := s.client.Index(index).UpdateSortableAttributes(&sortable); err != nil {
			log.Printf("failed to update %s sortable attributes: %v", index, err)
		}
	}

	log.Println("meilisearch indexes initialized")
}

func (s *searchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{Limit: 20})
	if err != nil {
		log.Printf("failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "TenantTokenSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			return
		}
	}

	expiry := time.Now().AddDate(100, 0, 0)

	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign tenant tokens",
		Name:        "TenantTokenSigner",
		Actions:     []string{"search"},
		Indexes:     []string{indexTraditions, indexPolicies, indexEthnic, indexCreative},
		ExpiresAt:   expiry,
	})
	if err != nil {
		log.Printf("failed to create signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
}

type searchDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Body      string `json:"body"`
	Category  string `json:"category"`
	Province  string `json:"province"`
	Type      string `json:"type"`
	ViewCount int    `json:"view_count"`
	CreatedAt int64  `json:"created_at"`
}

// cleanForIndex strips markup from narrative fields before indexing.
func (s *searchService) cleanForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	cleanText := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) addDocument(index string, doc searchDoc) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(index).AddDocuments([]searchDoc{doc}, strPtr("id"))
	return err
}

func (s *searchService) deleteDocument(index, id string) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(index).DeleteDocument(id)
	return err
}

func (s *searchService) IndexTradition(t *model.Tradition) error {
	return s.addDocument(indexTraditions, searchDoc{
		ID:        t.ID.String(),
		Name:      t.Name,
		Body:      s.cleanForIndex(t.History + " " + t.AlcoholFreeApproach),
		Category:  t.Category.Name,
		Province:  t.Province,
		Type:      t.Type,
		ViewCount: t.ViewCount,
		CreatedAt: t.CreatedAt.Unix(),
	})
}

func (s *searchService) IndexPublicPolicy(p *model.PublicPolicy) error {
	return s.addDocument(indexPolicies, searchDoc{
		ID:        p.ID.String(),
		Name:      p.Name,
		Body:      s.cleanForIndex(p.Content + " " + p.Summary),
		Category:  string(p.Level),
		Province:  p.Province,
		Type:      p.Type,
		ViewCount: p.ViewCount,
		CreatedAt: p.CreatedAt.Unix(),
	})
}

func (s *searchService) IndexEthnicGroup(e *model.EthnicGroup) error {
	return s.addDocument(indexEthnic, searchDoc{
		ID:        e.ID.String(),
		Name:      e.Name,
		Body:      s.cleanForIndex(e.History + " " + e.ActivityDetails),
		Category:  e.Category.Name,
		Province:  e.Province,
		Type:      e.Type,
		ViewCount: e.ViewCount,
		CreatedAt: e.CreatedAt.Unix(),
	})
}

func (s *searchService) IndexCreativeActivity(a *model.CreativeActivity) error {
	return s.addDocument(indexCreative, searchDoc{
		ID:        a.ID.String(),
		Name:      a.Name,
		Body:      s.cleanForIndex(a.Description + " " + a.Summary),
		Category:  a.Category.Name,
		Province:  a.Province,
		Type:      a.Type,
		ViewCount: a.ViewCount,
		CreatedAt: a.CreatedAt.Unix(),
	})
}

func (s *searchService) DeleteTradition(id string) error {
	return s.deleteDocument(indexTraditions, id)
}

func (s *searchService) DeletePublicPolicy(id string) error {
	return s.deleteDocument(indexPolicies, id)
}

func (s *searchService) DeleteEthnicGroup(id string) error {
	return s.deleteDocument(indexEthnic, id)
}

func (s *searchService) DeleteCreativeActivity(id string) error {
	return s.deleteDocument(indexCreative, id)
}

// GenerateSearchToken issues a short-lived tenant token scoped to the four
// public indexes; the frontend queries meilisearch directly with it.
func (s *searchService) GenerateSearchToken() (string, error) {
	if s.client == nil || s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("search is not configured")
	}

	searchRules := map[string]any{
		indexTraditions: map[string]any{},
		indexPolicies:   map[string]any{},
		indexEthnic:     map[string]any{},
		indexCreative:   map[string]any{},
	}

	return s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
}

func strPtr(s string) *string {
	return &s
}
