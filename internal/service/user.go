package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/auth"
	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/repository"
)

const authFailedMessage = "Username or Password does not match"

// UserService handles registration, login and user maintenance.
type UserService struct {
	users     repository.UserRepository
	cascade   *Cascade
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
	now       Clock
}

func NewUserService(
	users repository.UserRepository,
	cascade *Cascade,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		cascade:   cascade,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
		now:       utcNow,
	}
}

// AuthResult bundles the logged-in user and the issued token so the handler
// can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a user. The user name must not be taken.
func (s *UserService) Register(ctx context.Context, in model.NewUser) (*model.User, error) {
	if err := model.Validate(in); err != nil {
		return nil, err
	}

	if err := s.ensureUserNameFree(ctx, in.UserName, apperror.ErrValidation,
		fmt.Sprintf("Username %s already exists", in.UserName)); err != nil {
		return nil, err
	}

	stored, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		UserName:  in.UserName,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Sex:       in.Sex,
		Role:      in.Role,
		Password:  stored,
	}
	now := s.now()
	user.CreatedDate = now
	user.UpdatedDate = now

	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("userName", in.UserName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/user: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("userName", user.UserName),
	)
	return user, nil
}

// Authenticate checks credentials and issues a session token. Unknown users
// and wrong passwords fail identically.
func (s *UserService) Authenticate(ctx context.Context, creds model.Credentials) (*AuthResult, error) {
	if err := model.Validate(creds); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUserName(ctx, creds.UserName)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Unauthorized(authFailedMessage)
		}
		return nil, fmt.Errorf("service/user: looking up %q: %w", creds.UserName, err)
	}

	if err := s.passwords.Verify(user.Password, creds.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperror.Unauthorized(authFailedMessage)
		}
		return nil, fmt.Errorf("service/user: verifying password: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.UserName)
	if err != nil {
		return nil, fmt.Errorf("service/user: generating token for %s: %w", user.ID, err)
	}

	s.logger.Info("user authenticated", slog.String("userID", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/user: listing users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.Param("Missing Id parameter")
	}
	return s.users.GetUserByID(ctx, id)
}

// Update merges the patch onto the stored user. A missing user is a
// parameter error here, not a fetch error.
func (s *UserService) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if id == "" {
		return nil, apperror.Param("Missing Id parameter")
	}
	if err := model.Validate(patch); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Param("User Not Found")
		}
		return nil, err
	}

	if patch.UserName != nil && *patch.UserName != user.UserName {
		if err := s.ensureUserNameFree(ctx, *patch.UserName, apperror.ErrParam,
			"Username you are trying to change is already exists"); err != nil {
			return nil, err
		}
	}

	if patch.Password != nil {
		stored, err := s.passwords.Hash(*patch.Password)
		if err != nil {
			return nil, apperror.ValidationFailed("password", err.Error())
		}
		patch.Password = &stored
	}

	patch.Apply(user)

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("service/user: updating %s: %w", id, err)
	}

	s.logger.Info("user updated", slog.String("id", id))
	return user, nil
}

// Delete removes a user other than the caller and cascades to every record
// that references it.
func (s *UserService) Delete(ctx context.Context, callerID, id string) (model.DeleteResult, error) {
	if id == "" {
		return model.DeleteResult{}, apperror.Param("Missing Id parameter")
	}
	if id == callerID {
		return model.DeleteResult{}, apperror.Param("You should not delete yourself!!")
	}

	res, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return model.DeleteResult{}, err
	}

	if err := s.cascade.UserDeleted(ctx, id); err != nil {
		return model.DeleteResult{}, err
	}

	s.logger.Info("user deleted", slog.String("id", id), slog.String("by", callerID))
	return res, nil
}

// ensureUserNameFree fails with kind (validation or parameter error) when
// userName is already taken.
func (s *UserService) ensureUserNameFree(ctx context.Context, userName string, kind error, message string) error {
	_, err := s.users.GetUserByUserName(ctx, userName)
	switch {
	case err == nil:
		return &apperror.AppError{Err: kind, Message: message, Field: "userName"}
	case isNotFound(err):
		return nil
	default:
		return fmt.Errorf("service/user: checking user name %q: %w", userName, err)
	}
}
