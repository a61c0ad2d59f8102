package main

import (
	"context"
	"log"
	"time"

	"go-compliance/internal/config"
	"go-compliance/internal/database"
	"go-compliance/internal/features/report"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds a couple of demo report definitions against the built-in mock
// catalog so a fresh install has something to open.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := report.NewReportRepository(&database.MongodbDB{DB: client.Database(cfg.DBName)})

	for _, def := range demoReports() {
		if err := repo.Create(ctx, &def); err != nil {
			log.Fatalf("failed to seed report %q: %v", def.Name, err)
		}
		log.Printf("seeded report %q (%s)", def.Name, def.ID.Hex())
	}
}

func demoReports() []report.ReportDefinition {
	openHighPriority := report.ReportConfig{
		Name:        "Open High-Priority Complaints",
		Description: "Complaints marked High that are not yet closed",
		DataSource:  "complaints",
		Fields: []report.SelectedField{
			{FieldID: "complaint_id", Label: "Complaint ID"},
			{FieldID: "property_id", Label: "Property"},
			{FieldID: "complainant_name", Label: "Reported By"},
			{FieldID: "status", Label: "Status"},
		},
	}
	p := openHighPriority.AddFilter(0)
	p.SetField("priority")
	p.Value = "High"
	p = openHighPriority.AddFilter(0)
	p.SetField("status")
	p.SetOperator(report.OpNotEquals)
	p.Value = "Closed"

	failedInspections := report.ReportConfig{
		Name:        "Failed Inspections",
		Description: "Inspections scoring below the passing threshold",
		DataSource:  "inspections",
		Fields: []report.SelectedField{
			{FieldID: "inspection_id", Label: "Inspection"},
			{FieldID: "property_id", Label: "Property"},
			{FieldID: "inspector", Label: "Inspector"},
			{FieldID: "score", Label: "Score"},
		},
	}
	p = failedInspections.AddFilter(0)
	p.SetField("passed")
	p.Value = false

	return []report.ReportDefinition{
		{ReportConfig: openHighPriority, CreatedBy: "seed"},
		{ReportConfig: failedInspections, CreatedBy: "seed"},
	}
}
