package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"splice-reports/internal/config"

	"go.uber.org/zap"
)

// EncryptionPipeline wraps an export bundle for the single pre-provisioned
// recipient. Implementations must never hand back plaintext on failure.
type EncryptionPipeline interface {
	Encrypt(ctx context.Context, plain []byte) ([]byte, error)
}

// commandRunner executes one external command with optional stdin and
// returns captured stdout and stderr. Overridable so tests never spawn gpg.
type commandRunner func(ctx context.Context, stdin []byte, name string, args ...string) (stdout, stderr []byte, err error)

// GPGPipeline shells out to gpg with an ephemeral, request-private keyring
// directory. The recipient's public key file is configured once at startup;
// trust is unconditional because the keyring holds exactly one key and is
// discarded before Encrypt returns.
type GPGPipeline struct {
	KeyPath string
	Logger  *zap.Logger

	run commandRunner
}

func NewEncryptionPipeline(cfg *config.Config, logger *zap.Logger) EncryptionPipeline {
	return &GPGPipeline{
		KeyPath: cfg.GPGPublicKeyPath,
		Logger:  logger,
		run:     runCommand,
	}
}

func (p *GPGPipeline) Encrypt(ctx context.Context, plain []byte) ([]byte, error) {
	if err := p.checkKeyFile(); err != nil {
		return nil, err
	}

	homedir, err := os.MkdirTemp("", "report-keyring-")
	if err != nil {
		return nil, &EncryptionError{Stage: "keyring", Err: err}
	}
	defer os.RemoveAll(homedir)

	if _, stderr, err := p.run(ctx, nil, "gpg", "--batch", "--homedir", homedir, "--import", p.KeyPath); err != nil {
		return nil, &EncryptionError{Stage: "import", Stderr: string(stderr), Err: err}
	}

	listing, stderr, err := p.run(ctx, nil, "gpg", "--batch", "--homedir", homedir, "--list-keys", "--with-colons")
	if err != nil {
		return nil, &EncryptionError{Stage: "list-keys", Stderr: string(stderr), Err: err}
	}

	recipient := firstUID(listing)
	if recipient == "" {
		// A key was imported but no identity could be parsed; never guess
		// a default recipient.
		return nil, &EncryptionError{Stage: "list-keys", Err: errors.New("no uid found in keyring listing")}
	}

	p.Logger.Info("encrypting export bundle", zap.String("recipient", recipient))

	cipher, stderr, err := p.run(ctx, plain, "gpg",
		"--batch", "--homedir", homedir,
		"--trust-model", "always",
		"--armor", "--recipient", recipient, "--encrypt")
	if err != nil {
		return nil, &EncryptionError{Stage: "encrypt", Stderr: string(stderr), Err: err}
	}

	return cipher, nil
}

// checkKeyFile rejects a missing, irregular or unreadable key file before
// any process is spawned.
func (p *GPGPipeline) checkKeyFile() error {
	info, err := os.Stat(p.KeyPath)
	if err != nil {
		return &ConfigError{Path: p.KeyPath, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &ConfigError{Path: p.KeyPath, Err: errors.New("not a regular file")}
	}

	f, err := os.Open(p.KeyPath)
	if err != nil {
		return &ConfigError{Path: p.KeyPath, Err: err}
	}
	f.Close()

	return nil
}

// firstUID parses the first uid line of a --with-colons key listing.
func firstUID(listing []byte) string {
	for _, line := range strings.Split(string(listing), "\n") {
		fields := strings.Split(line, ":")
		if fields[0] == "uid" && len(fields) > 9 && fields[9] != "" {
			return fields[9]
		}
	}
	return ""
}

func runCommand(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
