package inventory

// Config holds configuration for snapshot persistence.
type Config struct {
	// SnapshotKey is the storage key of the persisted counting session.
	SnapshotKey string `mapstructure:"snapshot_key" default:"fn_inventory_data"`
	// SchemaVersion stamps every snapshot; a loaded snapshot with a
	// different version is discarded and the session starts empty.
	SchemaVersion string `mapstructure:"schema_version" default:"1.1"`
}
