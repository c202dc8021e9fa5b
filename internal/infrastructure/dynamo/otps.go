package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-otp-auth/internal/domain"
)

// OTPRepo manages email verification OTP records.
// PK: otp_id (ULID). GSI email-otp_id-index: PK email, SK otp_id.
//
// Records are never deleted here; expired ones age out through the
// table's TTL on expires_at. Consumption is a conditional write, so two
// concurrent verifications of the same code cannot both succeed.
type OTPRepo struct {
	client    API
	tableName string
}

func NewOTPRepo(client API, tableName string) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName}
}

func (r *OTPRepo) Insert(ctx context.Context, v *domain.EmailVerificationOTP) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// FindActive returns the newest record for (email, code) that is unused
// and not yet expired, or ErrNotFound. The index query runs newest-first
// (descending otp_id): resend does not invalidate earlier codes, so the
// most recently issued match wins. The filter applies per page, so a
// page can come back empty with more pages behind it; the loop follows
// LastEvaluatedKey until a match or the end of the index.
func (r *OTPRepo) FindActive(ctx context.Context, email, code string) (*domain.EmailVerificationOTP, error) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String("email-otp_id-index"),
			KeyConditionExpression: aws.String("email = :e"),
			FilterExpression:       aws.String("#c = :c AND #u = :f AND expires_at > :now"),
			ExpressionAttributeNames: map[string]string{
				"#c": "code", // CODE is a DynamoDB reserved word
				"#u": "used",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":e":   &types.AttributeValueMemberS{Value: email},
				":c":   &types.AttributeValueMemberS{Value: code},
				":f":   &types.AttributeValueMemberBOOL{Value: false},
				":now": &types.AttributeValueMemberN{Value: now},
			},
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		if len(out.Items) > 0 {
			var v domain.EmailVerificationOTP
			if err := attributevalue.UnmarshalMap(out.Items[0], &v); err != nil {
				return nil, err
			}
			return &v, nil
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil, fmt.Errorf("no active otp: %w", domain.ErrNotFound)
		}
		startKey = out.LastEvaluatedKey
	}
}

// MarkUsed flips used=false to used=true for the given record.
// The ConditionExpression makes the transition atomic: under concurrent
// calls exactly one observes success and the rest get ErrAlreadyUsed.
func (r *OTPRepo) MarkUsed(ctx context.Context, otpID string, usedAt time.Time) error {
	ts, err := attributevalue.Marshal(usedAt)
	if err != nil {
		return fmt.Errorf("marshal used_at: %w", err)
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      strKey("otp_id", otpID),
		UpdateExpression:         aws.String("SET #u = :t, used_at = :ts"),
		ConditionExpression:      aws.String("#u = :f"),
		ExpressionAttributeNames: map[string]string{"#u": "used"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":  &types.AttributeValueMemberBOOL{Value: true},
			":f":  &types.AttributeValueMemberBOOL{Value: false},
			":ts": ts,
		},
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("otp already consumed: %w", domain.ErrAlreadyUsed)
	}
	return err
}
