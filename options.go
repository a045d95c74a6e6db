package sealbox

// defaultStorageTag is the tag the local key reference is persisted under
// when no explicit tag is configured.
const defaultStorageTag = "sealbox:local-key:v1"

// agreementConfig holds configuration for a KeyAgreement.
type agreementConfig struct {
	storageTag string
}

// Option configures a KeyAgreement.
type Option func(*agreementConfig)

// WithStorageTag sets the tag the local key reference is persisted under.
// Two KeyAgreements sharing a storage and a tag share one identity; distinct
// tags give distinct identities within the same storage.
// Default: "sealbox:local-key:v1".
func WithStorageTag(tag string) Option {
	return func(c *agreementConfig) {
		c.storageTag = tag
	}
}
