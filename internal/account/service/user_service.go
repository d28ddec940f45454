package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/therishabh/chai-backend/internal/account/domain"
	"github.com/therishabh/chai-backend/internal/account/dto"
	"github.com/therishabh/chai-backend/internal/account/security"
	"github.com/therishabh/chai-backend/internal/apperror"
)

const msgTokenGeneration = "something went wrong while generating refresh and access token"

type UserService struct {
	repo     domain.UserRepository
	tokens   TokenGenerator
	hasher   security.PasswordHasher
	uploader domain.AssetUploader
	log      *zap.Logger
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, hasher security.PasswordHasher,
	uploader domain.AssetUploader, log *zap.Logger) *UserService {
	return &UserService{
		repo:     repo,
		tokens:   tokens,
		hasher:   hasher,
		uploader: uploader,
		log:      log,
	}
}

// Register creates a new account. The avatar upload must succeed before the
// row is written; a failed cover image upload is tolerated and the account is
// created without one.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.UserOutput, error) {
	fields := map[string]string{
		"fullName": strings.TrimSpace(input.FullName),
		"email":    strings.TrimSpace(input.Email),
		"username": strings.TrimSpace(input.Username),
		"password": strings.TrimSpace(input.Password),
	}

	var empty []string
	for _, name := range []string{"fullName", "email", "username", "password"} {
		if fields[name] == "" {
			empty = append(empty, name)
		}
	}
	if len(empty) > 0 {
		return nil, apperror.BadRequest(fmt.Sprintf("%s fields are required", strings.Join(empty, ", ")))
	}

	username := strings.ToLower(fields["username"])
	email := strings.ToLower(fields["email"])

	for _, identifier := range []string{email, username} {
		existing, err := s.repo.GetByUsernameOrEmail(ctx, identifier)
		if err != nil {
			return nil, apperror.Internal("something went wrong while registering the user", err)
		}
		if existing != nil {
			return nil, apperror.Conflict("email or username already exists")
		}
	}

	if input.Avatar == nil {
		return nil, apperror.BadRequest("avatar image is required")
	}

	avatarURL, err := s.uploader.Upload(ctx, *input.Avatar)
	if err != nil {
		return nil, apperror.Internal("avatar image is not uploaded", err)
	}

	// Cover image is optional and best-effort: a failed upload does not
	// abort registration.
	var coverURL string
	if input.CoverImage != nil {
		coverURL, err = s.uploader.Upload(ctx, *input.CoverImage)
		if err != nil {
			s.log.Warn("cover image upload failed", zap.String("username", username), zap.Error(err))
			coverURL = ""
		}
	}

	passwordHash, err := s.hasher.Hash(fields["password"])
	if err != nil {
		return nil, apperror.Internal("something went wrong while registering the user", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     fields["fullName"],
		Avatar:       avatarURL,
		CoverImage:   coverURL,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.Internal("something went wrong while registering the user", err)
	}

	return dto.NewUserOutput(user), nil
}

// Login verifies credentials and issues a fresh access/refresh pair. Storing
// the new refresh token on the account invalidates whatever token was there
// before.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	identifier := strings.ToLower(strings.TrimSpace(input.Username))
	if identifier == "" {
		identifier = strings.ToLower(strings.TrimSpace(input.Email))
	}
	if identifier == "" {
		return nil, apperror.BadRequest("email or username is required for login")
	}
	if input.Password == "" {
		return nil, apperror.BadRequest("password is required")
	}

	user, err := s.repo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, apperror.Internal("something went wrong during login", err)
	}
	if user == nil {
		return nil, apperror.BadRequest("invalid user")
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, apperror.BadRequest("invalid user credentials")
	}

	accessToken, refreshToken, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginOutput{
		User:         dto.NewUserOutput(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The presented
// token must byte-equal the one stored on the account; anything else is a
// replay of a superseded token and fails closed.
func (s *UserService) Refresh(ctx context.Context, incomingToken string) (*dto.TokenPairOutput, error) {
	if incomingToken == "" {
		return nil, apperror.Unauthorized("unauthorized request")
	}

	claims, err := s.tokens.VerifyRefresh(incomingToken)
	if err != nil {
		s.log.Info("refresh token rejected", zap.Error(err))
		return nil, apperror.Unauthorized("invalid refresh token")
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperror.Internal("something went wrong during token refresh", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid refresh token")
	}

	if user.RefreshToken != incomingToken {
		return nil, apperror.Unauthorized("refresh token is expired or used")
	}

	accessToken, refreshToken, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout clears the stored refresh token, making every previously issued
// refresh token for the account unusable.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if _, err := s.repo.UpdateFields(ctx, userID, map[string]any{"refresh_token": nil}); err != nil {
		return apperror.Internal("something went wrong during logout", err)
	}

	return nil
}

// ChangePassword verifies the old password before hashing and storing the
// new one. The stored refresh token is left untouched.
func (s *UserService) ChangePassword(ctx context.Context, userID string, input dto.ChangePasswordInput) error {
	if input.OldPassword == "" || input.NewPassword == "" {
		return apperror.BadRequest("old password and new password are required")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return apperror.Internal("something went wrong while changing password", err)
	}
	if user == nil {
		return apperror.Unauthorized("invalid access token")
	}

	if !s.hasher.Verify(input.OldPassword, user.PasswordHash) {
		return apperror.BadRequest("invalid old password")
	}

	passwordHash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return apperror.Internal("something went wrong while changing password", err)
	}

	if _, err := s.repo.UpdateFields(ctx, userID, map[string]any{"password_hash": passwordHash}); err != nil {
		return apperror.Internal("something went wrong while changing password", err)
	}

	return nil
}

// UpdateAccount changes fullName and/or email. At least one must be given.
func (s *UserService) UpdateAccount(ctx context.Context, userID string, input dto.UpdateAccountInput) (*dto.UserOutput, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if fullName == "" && email == "" {
		return nil, apperror.BadRequest("fullName or email is required")
	}

	fields := map[string]any{}
	if fullName != "" {
		fields["full_name"] = fullName
	}
	if email != "" {
		fields["email"] = email
	}

	user, err := s.repo.UpdateFields(ctx, userID, fields)
	if err != nil {
		return nil, apperror.Internal("something went wrong while updating account details", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid access token")
	}

	return dto.NewUserOutput(user), nil
}

// UpdateAvatar uploads a new avatar and stores its URL.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, asset *domain.Asset) (*dto.UserOutput, error) {
	return s.updateImage(ctx, userID, asset, "avatar", "avatar file is missing")
}

// UpdateCoverImage uploads a new cover image and stores its URL.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID string, asset *domain.Asset) (*dto.UserOutput, error) {
	return s.updateImage(ctx, userID, asset, "cover_image", "cover image file is missing")
}

func (s *UserService) updateImage(ctx context.Context, userID string, asset *domain.Asset, column, missingMsg string) (*dto.UserOutput, error) {
	if asset == nil {
		return nil, apperror.BadRequest(missingMsg)
	}

	url, err := s.uploader.Upload(ctx, *asset)
	if err != nil {
		return nil, apperror.Internal("error while uploading the image", err)
	}

	user, err := s.repo.UpdateFields(ctx, userID, map[string]any{column: url})
	if err != nil {
		return nil, apperror.Internal("something went wrong while updating the image", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid access token")
	}

	return dto.NewUserOutput(user), nil
}

// issueTokenPair mints both tokens and persists the refresh token on the
// account. This single write is the rotation point: the previous refresh
// token stops matching and can never be used again.
func (s *UserService) issueTokenPair(ctx context.Context, user *domain.User) (string, string, error) {
	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return "", "", apperror.Internal(msgTokenGeneration, err)
	}

	refreshToken, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return "", "", apperror.Internal(msgTokenGeneration, err)
	}

	if _, err := s.repo.UpdateFields(ctx, user.ID, map[string]any{"refresh_token": refreshToken}); err != nil {
		return "", "", apperror.Internal(msgTokenGeneration, err)
	}

	return accessToken, refreshToken, nil
}
