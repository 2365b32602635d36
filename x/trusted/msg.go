package trusted

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
)

func init() {
	migration.MustRegister(1, &AddContractMsg{}, migration.NoModification)
	migration.MustRegister(1, &RemoveContractMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

const (
	pathAddContract         = "trusted/add_contract"
	pathRemoveContract      = "trusted/remove_contract"
	pathUpdateConfiguration = "trusted/update_configuration"
)

var _ rampart.Msg = (*AddContractMsg)(nil)

// AddContractMsg marks a contract as trusted by a wallet. Adding an
// address that is already trusted updates the label.
type AddContractMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Address  rampart.Address
	Label    string
}

func (AddContractMsg) Path() string {
	return pathAddContract
}

func (msg *AddContractMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Address", msg.Address.Validate())
	errs = errors.AppendField(errs, "Label", validateLabel(msg.Label))
	return errs
}

func (msg *AddContractMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *AddContractMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *AddContractMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*RemoveContractMsg)(nil)

// RemoveContractMsg withdraws trust from a contract address.
type RemoveContractMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Address  rampart.Address
}

func (RemoveContractMsg) Path() string {
	return pathRemoveContract
}

func (msg *RemoveContractMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Address", msg.Address.Validate())
	return errs
}

func (msg *RemoveContractMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *RemoveContractMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *RemoveContractMsg) Unmarshal(raw []byte) error {
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
