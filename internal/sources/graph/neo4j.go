package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agentstation/dictcheck/pkg/constants"
	"github.com/agentstation/dictcheck/pkg/errors"
)

// Config holds Neo4j connection settings.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Neo4jSession runs read queries through the official driver.
type Neo4jSession struct {
	driver   neo4j.DriverWithContext
	database string
}

var _ Session = (*Neo4jSession)(nil)

// Connect creates a driver and verifies the server is reachable.
func Connect(ctx context.Context, cfg Config) (*Neo4jSession, error) {
	uri := cfg.URI
	if uri == "" {
		uri = constants.DefaultNeo4jURI
	}
	database := cfg.Database
	if database == "" {
		database = constants.DefaultNeo4jDatabase
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, errors.NewConfigError("neo4j", fmt.Sprintf("creating driver for %s", uri), err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("connecting to %s: %w", uri, err)
	}
	return &Neo4jSession{driver: driver, database: database}, nil
}

// Run executes query in a read session and collects every record.
func (s *Neo4jSession) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer func() { _ = session.Close(ctx) }()

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for result.Next(ctx) {
		rows = append(rows, result.Record().AsMap())
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Close releases the driver.
func (s *Neo4jSession) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
