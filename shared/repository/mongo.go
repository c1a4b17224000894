package repository

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/mongodb"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"
	"reflect"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

var errUnsupportedOperator = errors.New("unsupported filter operator")

// MongoRepository is a Store over one collection. Filters and updates are written with
// `db` column names and translated to the `bson` field names of T.
type MongoRepository[T any] struct {
	collection    *mongo.Collection
	otel          otel.Otel
	entitas       string
	primaryColumn string
	fields        map[string]string
	options       options
}

func NewMongoRepository[T any](entitasName, collectionName, primaryColumn string, conn *mongodb.Connection, otl otel.Otel, opts ...Option) MongoRepository[T] {
	var zero T

	fields := map[string]string{}
	getFields(reflect.TypeOf(zero), fields)

	return MongoRepository[T]{
		collection:    conn.Collection(collectionName),
		otel:          otl,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		fields:        fields,
		options:       newOptions(opts),
	}
}

func (repo *MongoRepository[T]) wrap(action string, err error) error {
	return fmt.Errorf("failed to %s (%s): %w", action, repo.entitas, translateMongoError(repo.entitas, err))
}

func (repo *MongoRepository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	_, err := repo.collection.InsertOne(ctx, model)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return repo.wrap("insert data", err)
	}

	return nil
}

func (repo *MongoRepository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Exist", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query, err := repo.requiredFilter(filter)
	if err != nil {
		return false, err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, fmt.Sprintf("%v", query))

	count, err := repo.collection.CountDocuments(ctx, query, mopts.Count().SetLimit(1))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, repo.wrap("check exist data", err)
	}

	return count > 0, nil
}

func (repo *MongoRepository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	var model T

	query, err := repo.filter(filter)
	if err != nil {
		return model, err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, fmt.Sprintf("%v", query))

	opts := mopts.FindOne()
	if projection := repo.projection(columns); projection != nil {
		opts.SetProjection(projection)
	}

	err = repo.collection.FindOne(ctx, query, opts).Decode(&model)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, repo.wrap("get data", err)
	}

	return model, nil
}

func (repo *MongoRepository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	models := []T{}

	query, err := repo.filter(filter)
	if err != nil {
		return models, err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, fmt.Sprintf("%v", query))

	opts := mopts.Find()

	if params.Limit > 0 {
		opts.SetLimit(int64(params.Limit))
		opts.SetSkip(int64(params.Offset()))
	}

	if sort := repo.sorting(params); sort != nil {
		opts.SetSort(sort)
	}

	if projection := repo.projection(columns); projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := repo.collection.Find(ctx, query, opts)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, repo.wrap("get all data", err)
	}

	if err = cursor.All(ctx, &models); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, repo.wrap("decode all data", err)
	}

	return models, nil
}

func (repo *MongoRepository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query, err := repo.filter(filter)
	if err != nil {
		return 0, err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, fmt.Sprintf("%v", query))

	count, err := repo.collection.CountDocuments(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, repo.wrap("count data", err)
	}

	return int(count), nil
}

func (repo *MongoRepository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query, err := repo.requiredFilter(filter)
	if err != nil {
		return err
	}

	set := bson.M{}
	for col, value := range mod {
		set[repo.field(col)] = value
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, fmt.Sprintf("%v", query))

	_, err = repo.collection.UpdateMany(ctx, query, bson.M{"$set": set})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return repo.wrap("update data", err)
	}

	return nil
}

func (repo *MongoRepository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query, err := repo.requiredFilter(filter)
	if err != nil {
		return err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, fmt.Sprintf("%v", query))

	_, err = repo.collection.DeleteMany(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return repo.wrap("delete data", err)
	}

	return nil
}

func (repo *MongoRepository[T]) requiredFilter(filter dto.FilterGroup) (bson.M, error) {
	query, err := repo.filter(filter)
	if err != nil {
		return nil, err
	}

	if len(query) == 0 {
		return nil, ErrRequiredFilter
	}

	return query, nil
}

func (repo *MongoRepository[T]) filter(filter dto.FilterGroup) (bson.M, error) {
	if err := validateIDs(filter, repo.primaryColumn); err != nil {
		return nil, err
	}

	return repo.BuildFilter(filter)
}

// BuildFilter translates a FilterGroup into a query document.
func (repo *MongoRepository[T]) BuildFilter(group dto.FilterGroup) (bson.M, error) {
	clauses := []bson.M{}

	for _, item := range group.Filters {
		var (
			clause bson.M
			err    error
		)

		switch f := item.(type) {
		case dto.Filter:
			clause, err = repo.buildCondition(f)
		case dto.FilterGroup:
			clause, err = repo.BuildFilter(f)
		}

		if err != nil {
			return nil, err
		}

		if len(clause) > 0 {
			clauses = append(clauses, clause)
		}
	}

	switch len(clauses) {
	case 0:
		return bson.M{}, nil
	case 1:
		return clauses[0], nil
	}

	if group.Operator == dto.FilterGroupOperatorOr {
		return bson.M{"$or": clauses}, nil
	}

	return bson.M{"$and": clauses}, nil
}

func (repo *MongoRepository[T]) buildCondition(f dto.Filter) (bson.M, error) {
	field := repo.field(f.Field)

	switch f.Operator {
	case dto.FilterOperatorEq:
		return bson.M{field: f.Value}, nil
	case dto.FilterOperatorLike:
		pattern := regexp.QuoteMeta(fmt.Sprintf("%v", f.Value))

		return bson.M{field: primitive.Regex{Pattern: pattern, Options: "i"}}, nil
	case dto.FilterOperatorIn:
		return bson.M{field: bson.M{"$in": f.Value}}, nil
	case dto.FilterOperatorNotEq:
		return bson.M{field: bson.M{"$ne": f.Value}}, nil
	case dto.FilterOperatorLessEq:
		return bson.M{field: bson.M{"$lte": f.Value}}, nil
	case dto.FilterOperatorGreaterEq:
		return bson.M{field: bson.M{"$gte": f.Value}}, nil
	case dto.FilterIsNull:
		return bson.M{field: nil}, nil
	case dto.FilterIsNotNull:
		return bson.M{field: bson.M{"$ne": nil}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedOperator, f.Operator)
	}
}

func (repo *MongoRepository[T]) field(column string) string {
	if name, ok := repo.fields[column]; ok {
		return name
	}

	return column
}

func (repo *MongoRepository[T]) sorting(params dto.QueryParams) bson.D {
	sortBy, sortDir := params.SortBy, params.SortDir
	if sortBy == "" {
		sortBy, sortDir = repo.options.sortBy, repo.options.sortDir
	}

	if _, ok := repo.fields[sortBy]; !ok {
		return nil
	}

	direction := 1
	if sortDir == dto.SortDirDesc {
		direction = -1
	}

	return bson.D{{Key: repo.field(sortBy), Value: direction}, {Key: "_id", Value: direction}}
}

func (repo *MongoRepository[T]) projection(columns []string) bson.M {
	if len(columns) == 0 {
		return nil
	}

	projection := bson.M{}
	for _, col := range columns {
		projection[repo.field(col)] = 1
	}

	return projection
}

// getFields maps `db` tags to `bson` names, following inlined embedded structs.
func getFields(reflectType reflect.Type, fields map[string]string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)
		bsonTag := strings.Split(field.Tag.Get("bson"), ",")

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			getFields(field.Type, fields)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" || bsonTag[0] == "" || bsonTag[0] == "-" {
			continue
		}

		fields[dbTag] = bsonTag[0]
	}
}
