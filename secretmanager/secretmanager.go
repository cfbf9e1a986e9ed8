package secretmanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var (
	loadDefaultConfig       = awsconfig.LoadDefaultConfig
	newSecretsManagerClient = func(cfg aws.Config) secretsManagerAPI {
		return secretsmanager.NewFromConfig(cfg)
	}
)

// GetSecret fetches the string value of a secret from AWS Secrets Manager.
func GetSecret(secretName string) (string, error) {
	ctx := context.Background()

	cfg, err := loadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to load AWS config: %w", err)
	}

	client := newSecretsManagerClient(cfg)
	output, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return "", fmt.Errorf("unable to retrieve secret %s: %w", secretName, err)
	}
	if output.SecretString == nil {
		return "", errors.New("secret value is empty")
	}

	return *output.SecretString, nil
}
