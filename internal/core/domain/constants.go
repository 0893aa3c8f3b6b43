package domain

const (
	// ValueKindAddress is a receiving address.
	ValueKindAddress ValueKind = iota
	// ValueKindPublicKey is a public key shown in hex form.
	ValueKindPublicKey
)

const (
	// ViewPrimary shows the value as chunked text lines.
	ViewPrimary View = iota
	// ViewAlternate shows the value as a scannable code.
	ViewAlternate
)

const (
	SessionStatePresenting SessionState = iota
	SessionStateDecided
)

const (
	DecisionUndecided Decision = iota
	DecisionConfirmed
	DecisionRejected
)

const (
	InputAccept Input = iota + 1
	InputReject
	InputSwitchView
)

const (
	// TransitionNone means the input left the session untouched.
	TransitionNone Transition = iota
	TransitionViewSwitched
	TransitionDecided
)

const (
	AddressTitle   = "Confirm address"
	PublicKeyTitle = "Confirm public key"

	networkLabelFormat = "%s network"
)
