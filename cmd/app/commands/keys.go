package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
	cryptoService "github.com/allisson/gymbuddy/internal/crypto/service"
)

// File names written by RunGenerateKeyPair when an output directory is given.
const (
	privateKeyFile = "private_key.pem"
	publicKeyFile  = "public_key.pem"
)

// maxPublicKeyBytes caps the size of a fetched public key document.
const maxPublicKeyBytes = 64 << 10

// GenerateKeyPairOptions controls RunGenerateKeyPair.
type GenerateKeyPairOptions struct {
	// Bits is the RSA modulus size.
	Bits int
	// KMSKeyURI, when set, wraps the private key with the KMS key before output.
	KMSKeyURI string
	// OutDir, when set, receives private_key.pem and public_key.pem.
	OutDir string
}

// RunGenerateKeyPair creates a transport key pair and prints it as environment
// variables ready for .env:
//
//	RSA_PRIVATE_KEY="<base64>"
//	RSA_PRIVATE_KEY_KMS_KEY_URI="<uri>"   (only with --kms-key-uri)
//
// Without KMS the value is the base64 PKCS#8 DER of the key. With KMS it is the
// base64 KMS ciphertext of the PEM encoded key. The public key PEM follows as
// a comment block. When OutDir is set the same material is also written to
// files (private key 0600).
func RunGenerateKeyPair(ctx context.Context, kms cryptoService.KMSService, writer io.Writer, opts GenerateKeyPairOptions) error {
	if opts.Bits < cryptoDomain.DefaultKeyBits {
		return fmt.Errorf("key size must be at least %d bits, got %d", cryptoDomain.DefaultKeyBits, opts.Bits)
	}

	keyPair, err := cryptoDomain.GenerateKeyPair(opts.Bits)
	if err != nil {
		return fmt.Errorf("failed to generate key pair: %w", err)
	}

	publicPEM, err := keyPair.PublicKeyPEM()
	if err != nil {
		return err
	}

	envValue, fileValue, err := privateKeyMaterial(ctx, kms, keyPair, opts.KMSKeyURI)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(envValue)
	defer cryptoDomain.Zero(fileValue)

	if opts.OutDir != "" {
		if err := writeKeyFiles(opts.OutDir, fileValue, publicPEM); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(writer, "# Transport key pair (%d bits)\n", keyPair.Bits())
	_, _ = fmt.Fprintf(writer, "RSA_PRIVATE_KEY=\"%s\"\n", envValue)
	if opts.KMSKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "RSA_PRIVATE_KEY_KMS_KEY_URI=\"%s\"\n", opts.KMSKeyURI)
	}
	if opts.OutDir != "" {
		_, _ = fmt.Fprintf(writer, "RSA_PRIVATE_KEY_PATH=\"%s\"\n", filepath.Join(opts.OutDir, privateKeyFile))
		_, _ = fmt.Fprintf(writer, "RSA_PUBLIC_KEY_PATH=\"%s\"\n", filepath.Join(opts.OutDir, publicKeyFile))
	}
	_, _ = fmt.Fprintln(writer)
	for _, line := range strings.Split(strings.TrimSpace(string(publicPEM)), "\n") {
		_, _ = fmt.Fprintf(writer, "# %s\n", line)
	}

	return nil
}

// privateKeyMaterial returns the env and file encodings of the private key.
func privateKeyMaterial(
	ctx context.Context,
	kms cryptoService.KMSService,
	keyPair *cryptoDomain.KeyPair,
	kmsKeyURI string,
) (envValue, fileValue []byte, err error) {
	privatePEM, err := keyPair.PrivateKeyPEM()
	if err != nil {
		return nil, nil, err
	}

	if kmsKeyURI == "" {
		der, err := keyPair.PrivateKeyDER()
		if err != nil {
			cryptoDomain.Zero(privatePEM)
			return nil, nil, err
		}
		defer cryptoDomain.Zero(der)
		return []byte(base64.StdEncoding.EncodeToString(der)), privatePEM, nil
	}

	defer cryptoDomain.Zero(privatePEM)
	ciphertext, err := kms.Wrap(ctx, kmsKeyURI, privatePEM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to wrap private key: %w", err)
	}
	wrapped := []byte(base64.StdEncoding.EncodeToString(ciphertext))
	return wrapped, append([]byte(nil), wrapped...), nil
}

func writeKeyFiles(dir string, privateMaterial, publicPEM []byte) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, privateKeyFile), privateMaterial, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, publicKeyFile), publicPEM, 0o644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	return nil
}

// EncryptPasswordOptions controls RunEncryptPassword.
type EncryptPasswordOptions struct {
	// PublicKey is a PEM file path or an http(s) URL serving the PEM, such as
	// http://localhost:8080/api/public-key.
	PublicKey string
	// Password is the plaintext to encrypt.
	Password string
	// Padding is oaep or pkcs1v15.
	Padding string
}

// RunEncryptPassword encrypts a password with the transport public key and
// prints the base64 ciphertext a login request expects in its password field.
func RunEncryptPassword(ctx context.Context, client *http.Client, writer io.Writer, opts EncryptPasswordOptions) error {
	if opts.Password == "" {
		return fmt.Errorf("password is required")
	}

	padding, err := cryptoDomain.ParsePadding(opts.Padding)
	if err != nil {
		return err
	}

	publicPEM, err := loadPublicKey(ctx, client, opts.PublicKey)
	if err != nil {
		return err
	}

	publicKey, err := cryptoDomain.ParsePublicKey(publicPEM)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %w", err)
	}

	ciphertext, err := cryptoService.EncryptWithPublicKey([]byte(opts.Password), publicKey, padding)
	if err != nil {
		return fmt.Errorf("failed to encrypt password: %w", err)
	}

	_, _ = fmt.Fprintln(writer, base64.StdEncoding.EncodeToString(ciphertext))
	return nil
}

func loadPublicKey(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	if source == "" {
		return nil, fmt.Errorf("public key source is required")
	}

	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read public key: %w", err)
		}
		return data, nil
	}

	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build public key request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch public key: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPublicKeyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read public key response: %w", err)
	}
	return data, nil
}
