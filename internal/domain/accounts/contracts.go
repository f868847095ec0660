package accounts

import "context"

// AccountService defines registration, authentication and account settings.
type AccountService interface {
	// Register creates an account with a hashed password.
	// It returns ErrEmailTaken when the email already has an account.
	Register(ctx context.Context, fullName, email, password string) (*UserAccount, error)

	// Authenticate verifies the email/password pair.
	// It returns ErrInvalidCredentials on any mismatch, including an unknown email.
	Authenticate(ctx context.Context, email, password string) (*UserAccount, error)

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, userID string) (*UserAccount, error)

	// FindByEmail retrieves an account by email, returning ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*UserAccount, error)

	// List returns every account ordered by creation time.
	List(ctx context.Context) ([]*UserAccount, error)

	// ResetPassword replaces the password of the account owning email.
	ResetPassword(ctx context.Context, email, newPassword string) error

	// ChangePassword replaces the password after verifying the current one.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	// SetAIFeatures records whether the user opted into AI generated content.
	SetAIFeatures(ctx context.Context, userID string, accepted bool) error
}

// CategoryService manages the custom categories of a user.
type CategoryService interface {
	// List returns the user's categories in insertion order.
	List(ctx context.Context, userID string) ([]string, error)

	// Add stores a lower-cased, trimmed category. Empty names and duplicates are ignored.
	Add(ctx context.Context, userID, name string) error

	// Delete removes the category from the user and from every one of the user's books.
	Delete(ctx context.Context, userID, name string) error
}

// UserAccountRepository defines the interface for UserAccount persistence
type UserAccountRepository interface {
	// Create adds a new UserAccount to the database
	Create(ctx context.Context, user *UserAccount) error
	// GetByID retrieves a UserAccount by ID
	GetByID(ctx context.Context, userID string) (*UserAccount, error)
	// GetByEmail retrieves a UserAccount by normalized email
	GetByEmail(ctx context.Context, email string) (*UserAccount, error)
	// List returns all UserAccounts
	List(ctx context.Context) ([]*UserAccount, error)
	// Update persists every field of the UserAccount
	Update(ctx context.Context, user *UserAccount) error
}
