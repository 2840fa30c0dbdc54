package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/pennybank/pennybank/internal/domain"
)

// UserUseCase handles registration, authentication and the closed set
// of profile edit operations.
type UserUseCase struct {
	txManager   TransactionManager
	userRepo    UserRepository
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *UserUseCase {
	return &UserUseCase{
		txManager:   txManager,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email         string
	Name          string
	ContactNumber string
	Password      string
}

// Register creates a user together with zero-balance chequing and
// savings accounts in one atomic unit.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, []*domain.Account, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidateName(input.Name); err != nil {
		return nil, nil, err
	}

	if input.ContactNumber != "" {
		if err := domain.ValidateContactNumber(input.ContactNumber); err != nil {
			return nil, nil, err
		}
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrEmailTaken
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          input.Email,
		Name:           input.Name,
		ContactNumber:  input.ContactNumber,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	accounts := []*domain.Account{
		{
			ID:        uc.idGen.Generate(),
			UserID:    user.ID,
			Type:      domain.AccountTypeChequing,
			Balance:   decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uc.idGen.Generate(),
			UserID:    user.ID,
			Type:      domain.AccountTypeSavings,
			Balance:   decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := uc.userRepo.CreateTx(ctx, tx, user); err != nil {
		return nil, nil, err
	}

	for _, account := range accounts {
		if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
			return nil, nil, err
		}
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   user.ID,
		AggregateType: domain.AggregateTypeUser,
		EventType:     domain.EventTypeUserRegistered,
		Payload:       map[string]any{"user_id": user.ID, "email": user.Email},
		CreatedAt:     now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	user.HashedPassword = ""

	return user, accounts, nil
}

// Authenticate verifies user credentials.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if err := verifyPassword(user.HashedPassword, password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user.HashedPassword = ""

	return user, nil
}

// GetProfile returns a user together with their accounts.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*domain.User, []*domain.Account, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	accounts, err := uc.accountRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	user.HashedPassword = ""

	return user, accounts, nil
}

// Rename changes the user's display name.
func (uc *UserUseCase) Rename(ctx context.Context, userID, name string) (*domain.User, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	return uc.updateUser(ctx, userID, func(user *domain.User) {
		user.Name = name
	})
}

// ChangeEmail changes the user's email after a uniqueness check.
func (uc *UserUseCase) ChangeEmail(ctx context.Context, userID, email string) (*domain.User, error) {
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != userID {
		return nil, domain.ErrEmailTaken
	}

	return uc.updateUser(ctx, userID, func(user *domain.User) {
		user.Email = email
	})
}

// ChangePassword replaces the user's credential hash.
func (uc *UserUseCase) ChangePassword(ctx context.Context, userID, password string) error {
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}

	_, err = uc.updateUser(ctx, userID, func(user *domain.User) {
		user.HashedPassword = hashed
	})

	return err
}

// ChangeContactNumber changes the user's contact number.
func (uc *UserUseCase) ChangeContactNumber(ctx context.Context, userID, contact string) (*domain.User, error) {
	if err := domain.ValidateContactNumber(contact); err != nil {
		return nil, err
	}

	return uc.updateUser(ctx, userID, func(user *domain.User) {
		user.ContactNumber = contact
	})
}

func (uc *UserUseCase) updateUser(ctx context.Context, userID string, mutate func(*domain.User)) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	mutate(user)
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.HashedPassword = ""

	return user, nil
}

// hashPassword hashes a password using bcrypt.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// verifyPassword verifies a password against a hash.
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
