package connectors

import (
	"context"
	"strings"
	"testing"
)

func TestForStoreSelection(t *testing.T) {
	tables := map[string]string{"complaints": "complaints"}

	mock, err := ForStore("mock", nil)
	if err != nil {
		t.Fatalf("ForStore(mock) error: %v", err)
	}
	if mock.GetType() != "mock" {
		t.Errorf("GetType = %q", mock.GetType())
	}

	for _, dbType := range []string{"postgresql", "mysql"} {
		conn, err := ForStore(dbType, tables)
		if err != nil {
			t.Fatalf("ForStore(%s) error: %v", dbType, err)
		}
		if conn.GetType() != dbType {
			t.Errorf("GetType = %q, want %q", conn.GetType(), dbType)
		}
	}

	if _, err := ForStore("sqlite", nil); err == nil {
		t.Error("expected error for unknown store type")
	}
}

func TestBuildConnectionString(t *testing.T) {
	config := map[string]interface{}{
		"host":     "db.internal",
		"database": "compliance",
		"username": "reporter",
		"password": "s3cret",
	}

	pg := NewExternalDBConnector("postgresql", nil).(*ExternalDBConnector)
	connStr, err := pg.buildConnectionString(config)
	if err != nil {
		t.Fatalf("postgresql error: %v", err)
	}
	for _, want := range []string{"host=db.internal", "port=5432", "dbname=compliance", "user=reporter"} {
		if !strings.Contains(connStr, want) {
			t.Errorf("postgresql conn string %q missing %q", connStr, want)
		}
	}

	my := NewExternalDBConnector("mysql", nil).(*ExternalDBConnector)
	connStr, err = my.buildConnectionString(config)
	if err != nil {
		t.Fatalf("mysql error: %v", err)
	}
	if !strings.HasPrefix(connStr, "reporter:s3cret@tcp(db.internal:3306)/compliance") {
		t.Errorf("mysql conn string = %q", connStr)
	}

	config["port"] = float64(5433)
	connStr, _ = pg.buildConnectionString(config)
	if !strings.Contains(connStr, "port=5433") {
		t.Errorf("explicit port not honored: %q", connStr)
	}

	_, err = pg.buildConnectionString(map[string]interface{}{"host": "db.internal"})
	if err == nil {
		t.Error("expected error for missing connection parameters")
	}
}

func TestExternalConnectorRequiresConnect(t *testing.T) {
	conn := NewExternalDBConnector("postgresql", map[string]string{"complaints": "complaints"})

	if _, err := conn.Fetch(context.Background(), "complaints"); err == nil {
		t.Error("Fetch before Connect should fail")
	}
	if err := conn.TestConnection(context.Background()); err == nil {
		t.Error("TestConnection before Connect should fail")
	}
	if err := conn.Disconnect(context.Background()); err != nil {
		t.Errorf("Disconnect without connection should be a no-op, got %v", err)
	}
}
