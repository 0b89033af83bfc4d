package message

import (
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

const (
	quackCommandType  = "Quack"
	deleteCommandType = "Delete"
)

// QuackCommand represents the intent to publish a new message.
type QuackCommand struct {
	Content core.MessageContent
}

// CommandType returns the type of this command for observability and routing purposes.
func (c QuackCommand) CommandType() string {
	return quackCommandType
}

// BuildQuackCommand creates a new QuackCommand.
func BuildQuackCommand(content core.MessageContent) QuackCommand {
	return QuackCommand{Content: content}
}

// DeleteCommand represents the intent to delete the message.
type DeleteCommand struct{}

// CommandType returns the type of this command for observability and routing purposes.
func (c DeleteCommand) CommandType() string {
	return deleteCommandType
}

// BuildDeleteCommand creates a new DeleteCommand.
func BuildDeleteCommand() DeleteCommand {
	return DeleteCommand{}
}
