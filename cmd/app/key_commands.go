package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gymbuddy/cmd/app/commands"
	"github.com/allisson/gymbuddy/internal/config"
	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
	cryptoService "github.com/allisson/gymbuddy/internal/crypto/service"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-key-pair",
			Usage: "Generate the RSA key pair used to encrypt passwords in transit",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "bits",
					Aliases: []string{"b"},
					Value:   cryptoDomain.DefaultKeyBits,
					Usage:   "RSA modulus size in bits (minimum 2048)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "Wrap the private key with this KMS key (e.g., base64key://, gcpkms://..., awskms://...)",
				},
				&cli.StringFlag{
					Name:    "out-dir",
					Aliases: []string{"o"},
					Value:   "",
					Usage:   "Also write private_key.pem and public_key.pem to this directory",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateKeyPair(
					ctx,
					cryptoService.NewKMSService(),
					commands.DefaultIO().Writer,
					commands.GenerateKeyPairOptions{
						Bits:      int(cmd.Int("bits")),
						KMSKeyURI: cmd.String("kms-key-uri"),
						OutDir:    cmd.String("out-dir"),
					},
				)
			},
		},
		{
			Name:  "encrypt-password",
			Usage: "Encrypt a password with the transport public key for a login request",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "public-key",
					Aliases: []string{"k"},
					Value:   "http://localhost:8080/api/public-key",
					Usage:   "Public key PEM file or URL serving it",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Plaintext password to encrypt",
				},
				&cli.StringFlag{
					Name:  "padding",
					Value: "",
					Usage: "Padding scheme: oaep or pkcs1v15 (defaults to RSA_PADDING)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				padding := cmd.String("padding")
				if padding == "" {
					padding = config.Load().RSAPadding
				}

				return commands.RunEncryptPassword(
					ctx,
					nil,
					commands.DefaultIO().Writer,
					commands.EncryptPasswordOptions{
						PublicKey: cmd.String("public-key"),
						Password:  cmd.String("password"),
						Padding:   padding,
					},
				)
			},
		},
	}
}
