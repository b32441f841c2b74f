package kvstore

// The whole dataset lives under one fixed key; the key name is part of the
// wire contract with pre-existing deployments.
const (
	// KeyAppData holds the persisted envelope.
	KeyAppData = "app_data"
	// KeySnapshotIndex holds the JSON list of existing snapshot keys.
	KeySnapshotIndex = "app_data:snapshots"
	// KeyPrefixSnapshot is the prefix for snapshot copies of the envelope.
	KeyPrefixSnapshot = "app_data:snapshot:"
)

// SnapshotKey returns the storage key for a snapshot taken at the given
// timestamp (RFC3339-like, lexicographically sortable).
func SnapshotKey(stamp string) string {
	return KeyPrefixSnapshot + stamp
}
