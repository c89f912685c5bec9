// api/store/analytics_store.go
package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/sync/errgroup"

	"brightwork/api/models"
)

// GraphExecutor is the slice of the graph driver the store needs; the
// database.Neo4jClient satisfies it.
type GraphExecutor interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error)
}

type AnalyticsStore struct {
	DB GraphExecutor
}

func NewAnalyticsStore(db GraphExecutor) *AnalyticsStore {
	return &AnalyticsStore{
		DB: db,
	}
}

// EnsureConstraints creates the uniqueness constraints the event queries
// rely on. Called once at startup when the graph store is configured.
func (s *AnalyticsStore) EnsureConstraints(ctx context.Context) error {
	constraints := []string{
		`CREATE CONSTRAINT IF NOT EXISTS FOR (v:Visitor) REQUIRE v.sessionId IS UNIQUE`,
		`CREATE CONSTRAINT IF NOT EXISTS FOR (e:Event) REQUIRE e.id IS UNIQUE`,
	}
	for _, constraint := range constraints {
		if _, err := s.DB.ExecuteQuery(ctx, constraint, nil); err != nil {
			return fmt.Errorf("failed to prepare analytics constraints: %w", err)
		}
	}
	return nil
}

// RecordEvent upserts the visitor and attaches a new event node in a single
// query. The one timestamp carried on the event parameterizes firstSeen,
// lastSeen and the event itself.
func (s *AnalyticsStore) RecordEvent(ctx context.Context, ev models.AnalyticsEvent) error {
	query := `MERGE (v:Visitor {sessionId: $sessionId})
ON CREATE SET v.firstSeen = datetime($timestamp)
SET v.lastSeen = datetime($timestamp)
CREATE (e:Event {
  id: $eventId,
  type: $eventType,
  page: $page,
  timestamp: datetime($timestamp),
  properties: $properties
})
MERGE (v)-[:PERFORMED]->(e)`

	var page any
	if ev.Page != nil {
		page = *ev.Page
	}
	properties := ev.Properties
	if properties == nil {
		properties = map[string]any{}
	}

	params := map[string]any{
		"sessionId":  ev.SessionID,
		"eventId":    ev.EventID,
		"eventType":  ev.EventType,
		"page":       page,
		"timestamp":  ev.Timestamp.UTC().Format(time.RFC3339Nano),
		"properties": properties,
	}

	if _, err := s.DB.ExecuteQuery(ctx, query, params); err != nil {
		return fmt.Errorf("failed to persist analytics event: %w", err)
	}
	return nil
}

// Metrics runs the three aggregate counts concurrently and folds them into a
// snapshot. The queries touch disjoint read paths, so no ordering applies.
func (s *AnalyticsStore) Metrics(ctx context.Context) (models.MetricsSnapshot, error) {
	var visitors, conversions, totalEvents int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.count(gctx, `MATCH (v:Visitor) RETURN count(v) AS n`)
		visitors = n
		return err
	})
	g.Go(func() error {
		n, err := s.count(gctx, `MATCH (:Visitor)-[:PERFORMED]->(e:Event { type: 'conversion' }) RETURN count(e) AS n`)
		conversions = n
		return err
	})
	g.Go(func() error {
		n, err := s.count(gctx, `MATCH (:Visitor)-[:PERFORMED]->(e:Event) RETURN count(e) AS n`)
		totalEvents = n
		return err
	})
	if err := g.Wait(); err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("failed to load analytics metrics: %w", err)
	}

	snapshot := models.MetricsSnapshot{
		Visitors:    visitors,
		Conversions: conversions,
		TotalEvents: totalEvents,
	}
	if visitors > 0 {
		// Rounded half-up to 3 decimals.
		snapshot.ConversionRate = math.Round(float64(conversions)/float64(visitors)*1000) / 1000
	}
	return snapshot, nil
}

func (s *AnalyticsStore) count(ctx context.Context, query string) (int64, error) {
	records, err := s.DB.ExecuteQuery(ctx, query, nil)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	value, ok := records[0].Get("n")
	if !ok {
		return 0, nil
	}
	n, ok := value.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected count value %T from query %q", value, query)
	}
	return n, nil
}
