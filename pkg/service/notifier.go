package service

import (
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/output"
)

// ConsoleNotifier prints session notifications as coloured lines.
type ConsoleNotifier struct{}

func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (n *ConsoleNotifier) Success(title, message string) {
	if message == "" {
		output.PrintSuccess("%s", title)
		return
	}
	output.PrintSuccess("%s: %s", title, message)
}

func (n *ConsoleNotifier) Failure(title, detail string) {
	if detail == "" {
		output.PrintError("%s", title)
		return
	}
	output.PrintError("%s: %s", title, detail)
}
