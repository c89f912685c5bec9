package database

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type Neo4jClient struct {
	Driver   neo4j.DriverWithContext
	Database string
}

// NewNeo4jDB connects to the analytics graph store. A missing NEO4J_URI,
// NEO4J_USER or NEO4J_PASSWORD returns (nil, nil): analytics is an optional
// feature, and the API starts without it rather than failing.
func NewNeo4jDB(ctx context.Context) (*Neo4jClient, error) {
	uri := os.Getenv("NEO4J_URI")
	user := os.Getenv("NEO4J_USER")
	password := os.Getenv("NEO4J_PASSWORD")

	if uri == "" || user == "" || password == "" {
		log.Println("Neo4j configuration missing - analytics endpoints disabled.")
		return nil, nil
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	log.Println("Successfully connected to Neo4j database!")
	return &Neo4jClient{Driver: driver, Database: os.Getenv("NEO4J_DATABASE")}, nil
}

// ExecuteQuery runs a single Cypher query against the configured database
// and returns the eagerly collected records.
func (c *Neo4jClient) ExecuteQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := neo4j.ExecuteQuery(ctx, c.Driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.Database))
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func (c *Neo4jClient) Close(ctx context.Context) {
	if c.Driver != nil {
		if err := c.Driver.Close(ctx); err != nil {
			log.Printf("Error closing Neo4j driver: %v", err)
		} else {
			log.Println("Neo4j connection closed.")
		}
	}
}
