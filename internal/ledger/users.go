package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"finance-ledger-go/internal/models"
)

const MinPasswordLength = 6

// PasswordHasher is the one-way digest capability.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenIssuer signs session tokens carrying the user identity.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// Users is the credential service: registration, login, password change.
type Users struct {
	db     *gorm.DB
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewUsers(db *gorm.DB, hasher PasswordHasher, tokens TokenIssuer) *Users {
	return &Users{db: db, hasher: hasher, tokens: tokens}
}

type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Session is what login and signup hand back.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func (u *Users) Register(ctx context.Context, in Registration) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	switch {
	case email == "":
		return nil, invalidf("email is required")
	case in.Password == "":
		return nil, invalidf("password is required")
	case name == "":
		return nil, invalidf("name is required")
	}

	db := u.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if count > 0 {
		return nil, conflict("user already exists")
	}

	digest, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: digest, Name: name}
	if err := db.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return nil, conflict("user already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Signup registers and logs in in one step.
func (u *Users) Signup(ctx context.Context, in Registration) (*Session, error) {
	user, err := u.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return u.session(user)
}

// Authenticate reports the same error for an unknown email and a wrong
// password.
func (u *Users) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, invalidf("email and password are required")
	}

	var user models.User
	err := u.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &Error{Kind: ErrInvalidCredentials, Message: ErrInvalidCredentials.Error()}
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !u.hasher.Verify(password, user.PasswordHash) {
		return nil, &Error{Kind: ErrInvalidCredentials, Message: ErrInvalidCredentials.Error()}
	}
	return u.session(&user)
}

func (u *Users) session(user *models.User) (*Session, error) {
	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user.Public()}, nil
}

// ChangePassword overwrites the digest. The current password is not asked for.
func (u *Users) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return invalidf("password must be at least %d characters", MinPasswordLength)
	}
	digest, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res := u.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password_hash", digest)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("user")
	}
	return nil
}

func (u *Users) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
