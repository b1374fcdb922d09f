package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/restic/fhbackup/internal/debug"
	"github.com/restic/fhbackup/internal/errors"
	"github.com/restic/fhbackup/internal/feature"
	"github.com/restic/fhbackup/internal/filehistory"
)

func init() {
	// don't import `go.uber.org/automaxprocs` to disable the log output
	_, _ = maxprocs.Set()
}

func newRootCommand() *cobra.Command {
	var opts TriggerOptions

	cmd := &cobra.Command{
		Use:   "fhbackup [flags]",
		Short: "Start a Windows File History backup now",
		Long: `
fhbackup asks the Windows File History service to start a backup right away.

It loads the File History configuration of the current user, checks that File
History is enabled and that the default target is usable, and then sends a
"start backup" request to the File History service, starting the service if
necessary. The backup itself runs in the background within the service.

EXIT STATUS
===========

Exit status is 0 if the backup was requested successfully.
Exit status is 1 if File History is not configured or the request failed.
Exit status is 130 if the command was interrupted before the backup was requested.
`,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return globalOptions.PreRun()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrigger(cmd.Context(), opts, globalOptions, globalOptions.terminal(), args)
		},
	}

	globalOptions.AddFlags(cmd.PersistentFlags())
	opts.AddFlags(cmd.Flags())

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newFeaturesCommand(),
		newVersionCommand(),
	)

	registerProfiling(cmd)

	return cmd
}

func printExitError(code int, message string) {
	if globalOptions.JSON {
		type jsonExitError struct {
			MessageType string `json:"message_type"` // exit_error
			Code        int    `json:"code"`
			Message     string `json:"message"`
		}

		jsonS := jsonExitError{
			MessageType: "exit_error",
			Code:        code,
			Message:     message,
		}

		err := json.NewEncoder(globalOptions.stderr).Encode(jsonS)
		if err != nil {
			Warnf("JSON encode failed: %v\n", err)
			return
		}
	} else {
		_, _ = fmt.Fprintf(globalOptions.stderr, "%v\n", message)
	}
}

func exitMessage(err error, logBuffer *bytes.Buffer) string {
	var stepErr *filehistory.StepError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "interrupted, no backup was requested"
	case errors.IsFatal(err):
		return err.Error()
	case errors.As(err, &stepErr):
		return fmt.Sprintf("File History configuration failed: %v", err)
	}

	msg := fmt.Sprintf("%+v", err)
	if logBuffer != nil && logBuffer.Len() > 0 {
		msg += "\nalso, the following messages were logged by a library:\n"
		sc := bufio.NewScanner(logBuffer)
		for sc.Scan() {
			msg += fmt.Sprintln(sc.Text())
		}
	}
	return msg
}

func exitCode(err error) int {
	var stepErr *filehistory.StepError

	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case errors.As(err, &stepErr) && feature.Flag.Enabled(feature.LegacyExitStatus):
		return 0
	default:
		return 1
	}
}

// execute runs the root command with args. An interrupt is only reported when
// it aborted the trigger before the backup was requested.
func execute(ctx context.Context, args []string) error {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func main() {
	// install custom global logger into a buffer, if an error occurs
	// we can show the logs
	logBuffer := bytes.NewBuffer(nil)
	log.SetOutput(logBuffer)

	err := feature.Flag.Apply(os.Getenv("FHBACKUP_FEATURES"), func(s string) {
		_, _ = fmt.Fprintln(os.Stderr, s)
	})
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		Exit(1)
	}

	debug.Log("main %#v", os.Args)
	debug.Log("fhbackup %s compiled with %v on %v/%v",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	ctx := createGlobalContext()
	err = execute(ctx, os.Args[1:])

	code := exitCode(err)
	if err != nil {
		printExitError(code, exitMessage(err, logBuffer))
	}
	Exit(code)
}
