package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudcopper/verity/domain/errors"
	"github.com/cloudcopper/verity/infra/config"
	"github.com/cloudcopper/verity/lib"
)

const (
	retNoErrorCode      = 0
	retGenericErrorCode = 1
)

//go:embed verity.yml
var fs embed.FS

func main() {
	// Use config file name from env VERITY_CONFIG
	// or verity.yml
	// Note the config file might be embedded!!!
	config.ConfigFileName = lib.GetEnvDefault("VERITY_CONFIG", config.ConfigFileName)

	// The first filesystem layer location (nothing if empty)
	config.TopRootFileSystemPath = lib.GetEnvDefault("VERITY_ROOT", config.TopRootFileSystemPath)
	// Second layer is current working dir
	// Last layer is this app embed fs

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()

	code := exitCode(err)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(code)
}

func exitCode(err error) int {
	if err == nil {
		return retNoErrorCode
	}
	var errorCode lib.ErrorCode
	if errors.As(err, &errorCode) {
		return errorCode.Code()
	}
	return retGenericErrorCode
}
