package addrbook

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
)

func init() {
	migration.MustRegister(1, &AddEntryMsg{}, migration.NoModification)
	migration.MustRegister(1, &RemoveEntryMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

const (
	pathAddEntry            = "addrbook/add_entry"
	pathRemoveEntry         = "addrbook/remove_entry"
	pathUpdateConfiguration = "addrbook/update_configuration"
)

var _ rampart.Msg = (*AddEntryMsg)(nil)

// AddEntryMsg adds a destination address to the address book of a
// wallet. Adding an address that the wallet already lists fails.
type AddEntryMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Address  rampart.Address
	Label    string
}

func (AddEntryMsg) Path() string {
	return pathAddEntry
}

func (msg *AddEntryMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Address", msg.Address.Validate())
	errs = errors.AppendField(errs, "Label", validateLabel(msg.Label))
	return errs
}

func (msg *AddEntryMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *AddEntryMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *AddEntryMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*RemoveEntryMsg)(nil)

// RemoveEntryMsg removes an address from the address book of a wallet.
type RemoveEntryMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Address  rampart.Address
}

func (RemoveEntryMsg) Path() string {
	return pathRemoveEntry
}

func (msg *RemoveEntryMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Address", msg.Address.Validate())
	return errs
}

func (msg *RemoveEntryMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *RemoveEntryMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *RemoveEntryMsg) Unmarshal(raw []byte) error {
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
