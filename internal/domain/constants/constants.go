// Package constants holds domain-wide constant values shared across layers.
package constants

// Pub/Sub provider names accepted by configuration.
const (
	PubSubProviderGoogle = "google"
	PubSubProviderLocal  = "local"
)

// Deployment environment names.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Category tree traversal is bounded. A walk longer than this means the
// parent chain is corrupt and the operation fails instead of looping.
const MaxCategoryDepth = 100
