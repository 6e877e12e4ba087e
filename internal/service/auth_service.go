package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"
)

// RegisterInput is the sign-up payload after transport decoding.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthService handles user auth logic
type AuthService struct {
	uow    repository.UnitOfWork
	hasher *PasswordHasher
	tokens *TokenManager
	now    func() time.Time
}

func NewAuthService(uow repository.UnitOfWork, hasher *PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{uow: uow, hasher: hasher, tokens: tokens, now: time.Now}
}

// Register validates the input, rejects taken usernames/emails and stores the
// user with a bcrypt hash. The returned user never carries the hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return models.User{}, err
	}

	// hash outside the transaction: bcrypt is deliberately slow
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}

	now := s.now().UTC()
	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.uow.Do(ctx, func(st repository.Stores) error {
		existing, err := st.Users.GetByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUsernameTaken
		}

		existing, err = st.Users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailTaken
		}

		id, err := st.Users.Create(ctx, user)
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return ErrEmailTaken
		case err != nil:
			return err
		}
		user.ID = id
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// GenerateToken validates credentials (username or email plus password) and returns a JWT.
func (s *AuthService) GenerateToken(ctx context.Context, identifier, password string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	var user *models.User
	err := s.uow.Do(ctx, func(st repository.Stores) error {
		var err error
		user, err = st.Users.FindByUsernameOrEmail(ctx, identifier)
		return err
	})
	if err != nil {
		return "", err
	}

	// unknown user and wrong password are indistinguishable to the caller
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	userID, err := s.tokens.Verify(accessToken)
	if err != nil {
		return models.User{}, err
	}

	var user *models.User
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		var err error
		user, err = st.Users.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, ErrUnauthenticated
	}

	user.PasswordHash = ""
	return *user, nil
}

// DeleteAccount removes the user and every task they own in one transaction.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int) error {
	return s.uow.Do(ctx, func(st repository.Stores) error {
		if _, err := st.Tasks.DeleteByOwner(ctx, userID); err != nil {
			return err
		}
		if err := st.Users.Delete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUnauthenticated
			}
			return err
		}
		return nil
	})
}

// AuthorizeOwner fails with ErrForbidden unless caller owns the resource.
func AuthorizeOwner(resourceOwnerID int, caller models.User) error {
	if caller.ID == 0 || caller.ID != resourceOwnerID {
		return ErrForbidden
	}
	return nil
}
