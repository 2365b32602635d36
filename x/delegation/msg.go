package delegation

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
)

func init() {
	migration.MustRegister(1, &SetEnabledMsg{}, migration.NoModification)
	migration.MustRegister(1, &AddTargetMsg{}, migration.NoModification)
	migration.MustRegister(1, &RemoveTargetMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

const (
	pathSetEnabled          = "delegation/set_enabled"
	pathAddTarget           = "delegation/add_target"
	pathRemoveTarget        = "delegation/remove_target"
	pathUpdateConfiguration = "delegation/update_configuration"
)

var _ rampart.Msg = (*SetEnabledMsg)(nil)

// SetEnabledMsg switches delegatecall execution for a wallet on or
// off. The policy is created if the wallet has none yet.
type SetEnabledMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Enabled  bool
}

func (SetEnabledMsg) Path() string {
	return pathSetEnabled
}

func (msg *SetEnabledMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	return errs
}

func (msg *SetEnabledMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *SetEnabledMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *SetEnabledMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*AddTargetMsg)(nil)

// AddTargetMsg adds a contract to the set of allowed delegatecall
// targets of a wallet. Adding the first target to a wallet without a
// policy creates a disabled one.
type AddTargetMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Target   rampart.Address
}

func (AddTargetMsg) Path() string {
	return pathAddTarget
}

func (msg *AddTargetMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Target", msg.Target.Validate())
	return errs
}

func (msg *AddTargetMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *AddTargetMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *AddTargetMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*RemoveTargetMsg)(nil)

// RemoveTargetMsg removes a contract from the set of allowed
// delegatecall targets of a wallet.
type RemoveTargetMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Target   rampart.Address
}

func (RemoveTargetMsg) Path() string {
	return pathRemoveTarget
}

func (msg *RemoveTargetMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Target", msg.Target.Validate())
	return errs
}

func (msg *RemoveTargetMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *RemoveTargetMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *RemoveTargetMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg updates this package configuration. Only non
// zero fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Metadata *rampart.Metadata
	Patch    *Configuration
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfiguration
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

func (msg *UpdateConfigurationMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}
