package identity

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"cloudstore/internal/config"
	"cloudstore/pkg/apperrors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
)

const (
	emptyAWSSessionToken = ""

	attrEmail         = "email"
	attrEmailVerified = "email_verified"
	attrValueTrue     = "true"

	authParamUsername   = "USERNAME"
	authParamPassword   = "PASSWORD"
	authParamSecretHash = "SECRET_HASH"

	errFailedCreateAWSSessionFmt = "failed to create AWS session: %w"
	msgRegisterFailed            = "identity provider registration failed"
	msgSetPasswordFailed         = "identity provider password setup failed"
	msgAuthenticateFailed        = "identity provider authentication failed"
	msgEmptyAuthResult           = "identity provider returned no authentication result"
)

// Cognito implements Provider against an AWS Cognito user pool using
// the admin API (server-side credential flow, no SRP).
type Cognito struct {
	svc          *cognitoidentityprovider.CognitoIdentityProvider
	userPoolID   string
	clientID     string
	clientSecret string
}

func NewCognito(awsCfg *config.AWSConfig, cfg *config.CognitoConfig) (*Cognito, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(awsCfg.Region),
		Credentials: credentials.NewStaticCredentials(
			awsCfg.AccessKeyID,
			awsCfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	})

	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return &Cognito{
		svc:          cognitoidentityprovider.New(sess),
		userPoolID:   cfg.UserPoolID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}, nil
}

// Register creates the account and immediately makes the password
// permanent, so the user can log in without a reset round-trip. The
// returned value is the pool-assigned username (the external id stored
// locally).
func (c *Cognito) Register(ctx context.Context, email, password, username string) (string, error) {
	createOut, err := c.svc.AdminCreateUserWithContext(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:        aws.String(c.userPoolID),
		Username:          aws.String(email),
		TemporaryPassword: aws.String(password),
		MessageAction:     aws.String(cognitoidentityprovider.MessageActionTypeSuppress),
		UserAttributes: []*cognitoidentityprovider.AttributeType{
			{Name: aws.String(attrEmail), Value: aws.String(email)},
			{Name: aws.String(attrEmailVerified), Value: aws.String(attrValueTrue)},
		},
	})
	if err != nil {
		return "", apperrors.Upstream(msgRegisterFailed, err)
	}

	_, err = c.svc.AdminSetUserPasswordWithContext(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  aws.Bool(true),
	})
	if err != nil {
		return "", apperrors.Upstream(msgSetPasswordFailed, err)
	}

	return aws.StringValue(createOut.User.Username), nil
}

func (c *Cognito) Authenticate(ctx context.Context, email, password string) (string, error) {
	authParams := map[string]*string{
		authParamUsername: aws.String(email),
		authParamPassword: aws.String(password),
	}

	if c.clientSecret != "" {
		authParams[authParamSecretHash] = aws.String(c.secretHash(email))
	}

	out, err := c.svc.AdminInitiateAuthWithContext(ctx, &cognitoidentityprovider.AdminInitiateAuthInput{
		UserPoolId:     aws.String(c.userPoolID),
		ClientId:       aws.String(c.clientID),
		AuthFlow:       aws.String(cognitoidentityprovider.AuthFlowTypeAdminNoSrpAuth),
		AuthParameters: authParams,
	})
	if err != nil {
		return "", apperrors.Upstream(msgAuthenticateFailed, err)
	}

	if out.AuthenticationResult == nil || out.AuthenticationResult.AccessToken == nil {
		return "", apperrors.Upstream(msgEmptyAuthResult, fmt.Errorf("missing access token"))
	}

	return aws.StringValue(out.AuthenticationResult.AccessToken), nil
}

// secretHash is the HMAC the pool requires when the app client has a
// secret: Base64(HMAC-SHA256(clientSecret, username + clientId)).
func (c *Cognito) secretHash(username string) string {
	mac := hmac.New(sha256.New, []byte(c.clientSecret))
	mac.Write([]byte(username + c.clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
