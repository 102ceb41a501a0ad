package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so every operation inside the callback shares one connection.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// CategoryRepo returns a CategoryRepository bound to the current transaction.
	CategoryRepo() CategoryRepository

	// ProductRepo returns a ProductRepository bound to the current transaction.
	ProductRepo() ProductRepository

	// OrderRepo returns an OrderRepository bound to the current transaction.
	OrderRepo() OrderRepository

	// CartRepo returns a CartRepository bound to the current transaction.
	CartRepo() CartRepository

	// VendorRepo returns a VendorRepository bound to the current transaction.
	VendorRepo() VendorRepository

	// ShopRepo returns a ShopRepository bound to the current transaction.
	ShopRepo() ShopRepository

	// SubscriptionRepo returns a SubscriptionRepository bound to the current transaction.
	SubscriptionRepo() SubscriptionRepository
}
