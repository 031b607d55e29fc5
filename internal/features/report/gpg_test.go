package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func writeKeyFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report-key.pub")
	if err := os.WriteFile(path, []byte("-----BEGIN PGP PUBLIC KEY BLOCK-----\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func uidListing(uid string) []byte {
	return []byte(strings.Join([]string{
		"tru::1:1756000000:0:3:1:5",
		"pub:u:4096:1:AABBCCDD00112233:1756000000:::u:::escaESCA::::::23::0:",
		"uid:u::::1756000000::DEADBEEF::" + uid + "::::::::::0:",
		"",
	}, "\n"))
}

func TestEncryptMissingKeyFile(t *testing.T) {
	calls := 0
	p := &GPGPipeline{
		KeyPath: "/does/not/exist/key.pub",
		Logger:  zap.NewNop(),
		run: func(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
			calls++
			return nil, nil, nil
		},
	}

	_, err := p.Encrypt(context.Background(), []byte("bundle"))

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Encrypt() error = %v, want ConfigError", err)
	}
	if calls != 0 {
		t.Errorf("external process invoked %d times for a missing key file, want 0", calls)
	}
}

func TestEncryptKeyPathIsDirectory(t *testing.T) {
	p := &GPGPipeline{
		KeyPath: t.TempDir(),
		Logger:  zap.NewNop(),
		run: func(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
			t.Fatal("process should not be invoked")
			return nil, nil, nil
		},
	}

	_, err := p.Encrypt(context.Background(), []byte("bundle"))

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Encrypt() error = %v, want ConfigError", err)
	}
}

func TestEncryptSuccess(t *testing.T) {
	const recipient = "Report Recipient <reports@example.com>"
	cipher := []byte("-----BEGIN PGP MESSAGE-----\n...")

	var encryptArgs []string
	var encryptStdin []byte

	p := &GPGPipeline{
		KeyPath: writeKeyFile(t),
		Logger:  zap.NewNop(),
		run: func(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
			if name != "gpg" {
				t.Fatalf("invoked %q, want gpg", name)
			}
			switch {
			case slices.Contains(args, "--import"):
				return nil, nil, nil
			case slices.Contains(args, "--list-keys"):
				return uidListing(recipient), nil, nil
			case slices.Contains(args, "--encrypt"):
				encryptArgs = args
				encryptStdin = stdin
				return cipher, nil, nil
			}
			t.Fatalf("unexpected gpg invocation: %v", args)
			return nil, nil, nil
		},
	}

	got, err := p.Encrypt(context.Background(), []byte("bundle-bytes"))
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if string(got) != string(cipher) {
		t.Errorf("Encrypt() = %q, want %q", got, cipher)
	}
	if string(encryptStdin) != "bundle-bytes" {
		t.Errorf("plaintext passed to gpg = %q, want bundle bytes", encryptStdin)
	}

	ri := slices.Index(encryptArgs, "--recipient")
	if ri < 0 || ri+1 >= len(encryptArgs) || encryptArgs[ri+1] != recipient {
		t.Errorf("encrypt args = %v, want --recipient %q", encryptArgs, recipient)
	}
	for _, flag := range []string{"--armor", "--trust-model"} {
		if !slices.Contains(encryptArgs, flag) {
			t.Errorf("encrypt args = %v, missing %s", encryptArgs, flag)
		}
	}
}

func TestEncryptNoRecipientIdentity(t *testing.T) {
	p := &GPGPipeline{
		KeyPath: writeKeyFile(t),
		Logger:  zap.NewNop(),
		run: func(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
			if slices.Contains(args, "--list-keys") {
				// A key exists but carries no parsable uid line.
				return []byte("pub:u:4096:1:AABBCCDD00112233:1756000000:::u:\n"), nil, nil
			}
			return nil, nil, nil
		},
	}

	_, err := p.Encrypt(context.Background(), []byte("bundle"))

	var encErr *EncryptionError
	if !errors.As(err, &encErr) {
		t.Fatalf("Encrypt() error = %v, want EncryptionError", err)
	}
	if encErr.Stage != "list-keys" {
		t.Errorf("Stage = %q, want list-keys", encErr.Stage)
	}
}

func TestEncryptImportFailure(t *testing.T) {
	p := &GPGPipeline{
		KeyPath: writeKeyFile(t),
		Logger:  zap.NewNop(),
		run: func(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
			if slices.Contains(args, "--import") {
				return nil, []byte("gpg: invalid packet"), errors.New("exit status 2")
			}
			t.Fatalf("unexpected invocation after failed import: %v", args)
			return nil, nil, nil
		},
	}

	_, err := p.Encrypt(context.Background(), []byte("bundle"))

	var encErr *EncryptionError
	if !errors.As(err, &encErr) {
		t.Fatalf("Encrypt() error = %v, want EncryptionError", err)
	}
	if encErr.Stage != "import" || !strings.Contains(encErr.Stderr, "invalid packet") {
		t.Errorf("error = %+v, want import stage with captured stderr", encErr)
	}
}
