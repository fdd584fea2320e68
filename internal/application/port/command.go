package port

import "context"

//go:generate mockgen -source=command.go -destination=mocks/mock_command_runner.go -package=mocks

// CommandRunner executes external programs and returns their standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
