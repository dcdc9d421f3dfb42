package aws_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	awsclient "github.com/ledgerprint/ledgerprint-api/libs/go/client/aws"
	"github.com/ledgerprint/ledgerprint-api/libs/go/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSecretsManagerClient_GetSecretString(t *testing.T) {
	tests := []struct {
		name      string
		arn       string
		fallback  string
		secret    *string
		fetchErr  error
		expectAPI bool
		want      string
		wantErr   bool
	}{
		{name: "plain secret", arn: "arn:token", secret: aws.String("abc"), expectAPI: true, want: "abc"},
		{name: "single key json is unwrapped", arn: "arn:token", secret: aws.String(`{"token":"xyz"}`), expectAPI: true, want: "xyz"},
		{name: "multi key json is returned as is", arn: "arn:token", secret: aws.String(`{"a":"1","b":"2"}`), expectAPI: true, want: `{"a":"1","b":"2"}`},
		{name: "fetch failure falls back", arn: "arn:token", fallback: "env-token", fetchErr: errors.New("denied"), expectAPI: true, want: "env-token"},
		{name: "no arn uses env", fallback: "env-token", want: "env-token"},
		{name: "nothing configured", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_SECRET_ARN", tt.arn)
			t.Setenv("TEST_SECRET", tt.fallback)

			ctrl := gomock.NewController(t)
			api := mocks.NewMockSecretsManagerAPI(ctrl)
			if tt.expectAPI {
				api.EXPECT().GetSecretValue(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
						assert.Equal(t, tt.arn, *in.SecretId)
						if tt.fetchErr != nil {
							return nil, tt.fetchErr
						}
						return &secretsmanager.GetSecretValueOutput{SecretString: tt.secret}, nil
					})
			}

			client := awsclient.NewSecretsManagerClientWithAPI(api)
			got, err := client.GetSecretString(context.Background(), "TEST_SECRET_ARN", "TEST_SECRET")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
