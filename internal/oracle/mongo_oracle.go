package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
	mongoclient "github.com/zatekoja/projectapi-e2e/internal/infrastructure/clients/mongo"
	"github.com/zatekoja/projectapi-e2e/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/projectapi-e2e/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sourceMongo = "mongo"

// MongoOracle reads the collections directly. It never writes and never caches.
type MongoOracle struct {
	projects *mongo.Collection
	reports  *mongo.Collection
	metrics  *observability.Metrics
}

// NewMongoOracle creates an oracle over the project and report collections
func NewMongoOracle(projects, reports *mongo.Collection, metrics *observability.Metrics) *MongoOracle {
	return &MongoOracle{
		projects: projects,
		reports:  reports,
		metrics:  metrics,
	}
}

// NewMongoOracleFromClient creates an oracle over the configured collections
func NewMongoOracleFromClient(client *mongoclient.Client, metrics *observability.Metrics) *MongoOracle {
	return NewMongoOracle(client.Projects(), client.Reports(), metrics)
}

// ProjectTemplate reads one template by id
func (o *MongoOracle) ProjectTemplate(ctx context.Context, id string) (*entities.ProjectTemplate, error) {
	defer observe(ctx, o.metrics, sourceMongo, "projectTemplate", time.Now())

	raw, err := o.findByID(ctx, o.projects, "project template", id)
	if err != nil {
		return nil, err
	}
	out := &entities.ProjectTemplate{}
	if err := decode(projectDocument(raw), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Project reads one project by id. ReportID carries the stored report reference.
func (o *MongoOracle) Project(ctx context.Context, id string) (*entities.Project, error) {
	defer observe(ctx, o.metrics, sourceMongo, "project", time.Now())

	raw, err := o.findByID(ctx, o.projects, "project", id)
	if err != nil {
		return nil, err
	}
	out := &entities.Project{}
	if err := decode(projectDocument(raw), out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReportForProject follows the project's report reference into the report collection
func (o *MongoOracle) ReportForProject(ctx context.Context, projectID string) (*entities.Report, error) {
	defer observe(ctx, o.metrics, sourceMongo, "reportForProject", time.Now())

	raw, err := o.findByID(ctx, o.projects, "project", projectID)
	if err != nil {
		return nil, err
	}
	reportID, _ := projectDocument(raw)["reportID"].(string)
	if reportID == "" {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("project %s has no report", projectID))
	}

	rawReport, err := o.findByID(ctx, o.reports, "report", reportID)
	if err != nil {
		return nil, err
	}
	out := &entities.Report{}
	if err := decode(reportDocument(rawReport), out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountDocuments counts the shared project collection
func (o *MongoOracle) CountDocuments(ctx context.Context) (int64, error) {
	defer observe(ctx, o.metrics, sourceMongo, "countDocuments", time.Now())

	n, err := o.projects.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, apperrors.NewTransportError("count project documents", err)
	}
	return n, nil
}

// FirstProjects returns the n documents with the lowest ids
func (o *MongoOracle) FirstProjects(ctx context.Context, n int) ([]entities.Project, error) {
	defer observe(ctx, o.metrics, sourceMongo, "firstProjects", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(int64(n))
	cursor, err := o.projects.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperrors.NewTransportError("find projects", err)
	}
	defer cursor.Close(ctx)

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, apperrors.NewDecodeError("read project cursor", err)
	}

	out := make([]entities.Project, len(raws))
	for i, raw := range raws {
		if err := decode(projectDocument(raw), &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (o *MongoOracle) findByID(ctx context.Context, coll *mongo.Collection, kind, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s id %q is not an object id", kind, id))
	}

	ctx, span := observability.StartSpan(ctx, "oracle.mongo."+coll.Name())
	defer span.End()

	var raw bson.M
	err = coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", kind, id))
	}
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewTransportError(fmt.Sprintf("find %s %s", kind, id), err)
	}
	return raw, nil
}
