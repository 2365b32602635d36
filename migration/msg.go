package migration

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
)

func init() {
	MustRegister(1, &UpgradeSchemaMsg{}, NoModification)
	MustRegister(1, &UpdateConfigurationMsg{}, NoModification)
}

const (
	pathUpgradeSchema       = "migration/upgrade_schema"
	pathUpdateConfiguration = "migration/update_configuration"
)

var _ rampart.Msg = (*UpgradeSchemaMsg)(nil)

// UpgradeSchemaMsg activates the next schema version of a given package.
// The new version is always the current one incremented by one.
type UpgradeSchemaMsg struct {
	Metadata *rampart.Metadata
	// Pkg is the name of the package that the upgrade refers to.
	Pkg string
}

func (msg *UpgradeSchemaMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *UpgradeSchemaMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.Pkg == "" {
		errs = errors.AppendField(errs, "Pkg", errors.Wrap(errors.ErrEmpty, "pkg is required"))
	}
	return errs
}

func (UpgradeSchemaMsg) Path() string {
	return pathUpgradeSchema
}

func (msg *UpgradeSchemaMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *UpgradeSchemaMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg updates the migration package configuration. Zero
// value patch fields are ignored.
type UpdateConfigurationMsg struct {
	Metadata *rampart.Metadata
	Patch    *Configuration
}

func (msg *UpdateConfigurationMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.Patch == nil {
		errs = errors.AppendField(errs, "Patch", errors.Wrap(errors.ErrEmpty, "patch is required"))
	} else {
		errs = errors.AppendField(errs, "Patch", msg.Patch.Validate())
	}
	return errs
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfiguration
}

func (msg *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}
