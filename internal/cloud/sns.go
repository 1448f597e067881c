package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

type publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes operator notifications to a topic.
type SNSClient struct {
	svc      publisher
	topicArn string
}

func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
	}, nil
}

// Publish sends subject and message to the configured topic and returns the message id.
func (c *SNSClient) Publish(ctx context.Context, subject, message string) (string, error) {
	out, err := c.svc.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish to SNS: %w", err)
	}

	id := aws.ToString(out.MessageId)
	log.Debug().Str("topic", c.topicArn).Str("message_id", id).Msg("sns message published")
	return id, nil
}
