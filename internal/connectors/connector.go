package connectors

import (
	"context"
	"fmt"
)

// RecordFetcher is the only surface the report engine needs from a
// record store: the raw rows for one data source, unpaged and unsorted.
type RecordFetcher interface {
	Fetch(ctx context.Context, sourceID string) ([]map[string]any, error)
}

// Connector is the full record-store contract. Connectors back the
// logical data sources the catalog describes; the engine never sees
// which kind it is talking to.
type Connector interface {
	RecordFetcher

	// Connect establishes connection to the underlying store
	Connect(ctx context.Context, config map[string]interface{}) error

	// Disconnect closes connection
	Disconnect(ctx context.Context) error

	// TestConnection tests if connection is valid
	TestConnection(ctx context.Context) error

	// GetType returns the connector type
	GetType() string
}

// ForStore picks the connector for a configured record store type.
// External stores map logical source ids to their tables; "mock"
// ignores the mapping and serves the built-in rows.
func ForStore(storeType string, tables map[string]string) (Connector, error) {
	switch storeType {
	case "mock":
		return NewMockConnector(), nil
	case "postgresql", "mysql":
		return NewExternalDBConnector(storeType, tables), nil
	default:
		return nil, fmt.Errorf("unknown record store type %q", storeType)
	}
}
