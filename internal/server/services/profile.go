package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/skillswap/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ProfileService reads profiles and manages avatar uploads through
// presigned S3 URLs.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

// NewProfileService constructs a ProfileService.
func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *ProfileService {
	return &ProfileService{db: db, repomanager: m, config: config}
}

// Get returns the profile with the given id.
func (s *ProfileService) Get(ctx context.Context, id string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByID(ctx, id)
}

// ListTransactions returns the user's ledger entries, newest first.
func (s *ProfileService) ListTransactions(ctx context.Context, userID string) ([]*models.Transaction, error) {
	return s.repomanager.Transactions(s.db).ListByUser(ctx, userID)
}

func avatarStorageKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("avatars/%s/%d/%d/%v", userID, d.Year(), d.Month(), uuid.New())
}

func (s *ProfileService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// GetAvatarUploadURL stores a fresh avatar key on the profile and returns a
// presigned PUT URL the client uploads the image to.
func (s *ProfileService) GetAvatarUploadURL(ctx context.Context, userID string) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := avatarStorageKey(userID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	if err := s.repomanager.Profiles(s.db).SetAvatarKey(ctx, userID, key); err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetAvatarURL returns a presigned GET URL for the profile's stored avatar,
// or an empty string when the profile has none.
func (s *ProfileService) GetAvatarURL(ctx context.Context, userID string) (string, error) {
	profile, err := s.repomanager.Profiles(s.db).GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile.AvatarKey == "" {
		return "", nil
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &profile.AvatarKey,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
