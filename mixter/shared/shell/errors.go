package shell

import "errors"

// ErrCommandRejected marks errors returned by command handlers when a business rule rejected the command.
// Handlers join it with the rule-specific error, so both can be matched with errors.Is.
var ErrCommandRejected = errors.New("command rejected by business rule")
