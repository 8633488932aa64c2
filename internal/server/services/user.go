package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/auth"
	"github.com/dmitrijs2005/skillswap/internal/server/config"
	"github.com/dmitrijs2005/skillswap/internal/server/metrics"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication and account provisioning:
//   - Register: create a profile with a signup bonus and mint tokens
//   - Login: verify credentials and mint tokens
//   - RefreshToken: rotate refresh tokens and mint new access tokens
//   - ProvisionExternal: first-login provisioning for externally
//     authenticated identities
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	externalProviderSecret       []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	signupBonusCredits           int64
	referralBonusCredits         int64
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		externalProviderSecret:       []byte(cfg.ExternalProviderSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		signupBonusCredits:           cfg.SignupBonusCredits,
		referralBonusCredits:         cfg.ReferralBonusCredits,
	}
}

// RegisterInput carries a password-based signup request. ReferrerID is the
// optional id of the profile that referred the new user.
type RegisterInput struct {
	Email      string
	Password   string
	FullName   string
	ReferrerID string
}

// Register creates a profile for the given credentials, grants the signup
// bonus, and returns the new profile together with a TokenPair. A duplicate
// email yields common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.Profile, *TokenPair, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(in.Password) < 8 {
		return nil, nil, fmt.Errorf("%w: password must be at least 8 characters", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return s.provision(ctx, &models.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     in.FullName,
		PasswordHash: string(hash),
	}, in.ReferrerID)
}

// ProvisionExternal exchanges an identity assertion for a profile and a
// TokenPair. The assertion must be signed by the configured external identity
// provider; its subject becomes the profile id, so the caller never chooses
// which profile it gets tokens for. The first exchange for a subject creates
// the profile and grants the signup bonus (plus the referral bonus when a
// referrer is named); later exchanges return the existing profile and never
// re-grant.
func (s *UserService) ProvisionExternal(ctx context.Context, assertion string, referrerID string) (*models.Profile, *TokenPair, error) {
	claims, err := auth.ParseIdentityAssertion(assertion, s.externalProviderSecret)
	if err != nil {
		return nil, nil, err
	}
	return s.provision(ctx, &models.Profile{
		ID:       claims.Subject,
		Email:    strings.TrimSpace(strings.ToLower(claims.Email)),
		FullName: claims.FullName,
	}, referrerID)
}

// Login verifies the email/password pair and, on success, returns the profile
// and a new TokenPair. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email string, password string) (*models.Profile, *TokenPair, error) {
	profile, err := s.repomanager.Profiles(s.db).GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, profile.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return profile, pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// provision upserts the profile and, exactly once per profile id, grants the
// signup bonus (and the referral bonus when a referrer is named). The upsert,
// bonus credit, and ledger entries commit together; the ledger's partial
// unique index on signup bonuses backs the exactly-once guarantee.
func (s *UserService) provision(ctx context.Context, profile *models.Profile, referrerID string) (*models.Profile, *TokenPair, error) {
	var (
		result   *models.Profile
		pair     *TokenPair
		inserted bool
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		profileRepo := s.repomanager.Profiles(tx)

		p, ins, err := profileRepo.Upsert(ctx, profile)
		if err != nil {
			return err
		}
		inserted = ins

		if ins && s.signupBonusCredits > 0 {
			if _, err := profileRepo.AdjustBalance(ctx, p.ID, s.signupBonusCredits); err != nil {
				return err
			}
			if _, err := s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
				ID:          uuid.New().String(),
				ToUserID:    p.ID,
				Amount:      s.signupBonusCredits,
				Kind:        models.TxSignupBonus,
				Description: "signup bonus",
			}); err != nil {
				return err
			}
			p.Balance += s.signupBonusCredits
		}

		if ins && referrerID != "" && referrerID != p.ID && s.referralBonusCredits > 0 {
			if _, err := profileRepo.AdjustBalance(ctx, referrerID, s.referralBonusCredits); err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					return fmt.Errorf("%w: unknown referrer", common.ErrorValidation)
				}
				return err
			}
			if _, err := s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
				ID:          uuid.New().String(),
				ToUserID:    referrerID,
				Amount:      s.referralBonusCredits,
				Kind:        models.TxReferralBonus,
				Description: fmt.Sprintf("referral bonus for %s", p.ID),
			}); err != nil {
				return err
			}
		}

		result = p

		pair, err = s.generateTokenPair(ctx, p.ID, tx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if inserted {
		metrics.SignupBonusesTotal.Inc()
	}
	return result, pair, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
