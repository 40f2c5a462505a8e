// Package ddb provides a simple repository for persisting alert records to DynamoDB.
package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/medalert/critical-result-intake/internal/models"
)

// PutItemAPI is the subset of the DynamoDB client used by Repo.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Repo wraps a DynamoDB client and table name for alert operations.
type Repo struct {
	DB    PutItemAPI
	Table string
}

// PutAlert upserts the alert record keyed by result_id. The put is
// unconditional: two submissions sharing a synthesized id overwrite each
// other, last write wins.
func (r *Repo) PutAlert(ctx context.Context, rec models.AlertRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return err
	}
	_, err = r.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.Table,
		Item:      item,
	})
	return err
}
